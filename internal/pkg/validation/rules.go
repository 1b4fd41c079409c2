package validation

import (
	"regexp"
	"time"
)

// Validation rule patterns and bounds
var (
	// MobilePattern accepts ten digits with an optional country code prefix.
	MobilePattern = `^(\+\d{1,3}[- ]?)?\d{10}$`

	// EarliestPassingYear is the oldest accepted school passing year.
	EarliestPassingYear = 1990
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Mobile *regexp.Regexp
}{
	Mobile: regexp.MustCompile(MobilePattern),
}

// DOBLayouts are the accepted date of birth encodings, tried in order.
var DOBLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseDOB parses a date of birth in any of DOBLayouts.
func ParseDOB(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range DOBLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
