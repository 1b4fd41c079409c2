package models

import (
	"strings"
)

// StudentFilter selects student records for listing and export.
// The zero value matches every record.
type StudentFilter struct {
	// Placed is nil when placement status is not constrained.
	Placed     *bool
	Department string
	// Search is matched case-insensitively as a literal substring against
	// email, district, native place and each company name.
	Search string
}

// NewStudentFilter builds a filter from raw query parameters. Any placed
// value other than "true" or "false" leaves placement unconstrained.
func NewStudentFilter(placed, department, search string) StudentFilter {
	var f StudentFilter
	switch placed {
	case "true":
		v := true
		f.Placed = &v
	case "false":
		v := false
		f.Placed = &v
	}
	f.Department = strings.TrimSpace(department)
	f.Search = strings.TrimSpace(search)
	return f
}

// IsEmpty reports whether the filter matches every record.
func (f StudentFilter) IsEmpty() bool {
	return f.Placed == nil && f.Department == "" && f.Search == ""
}

// Matches evaluates the filter against a single record in memory.
func (f StudentFilter) Matches(s *StudentRecord) bool {
	if s == nil {
		return false
	}
	if f.Placed != nil && s.IsPlaced != *f.Placed {
		return false
	}
	if f.Department != "" && string(s.Department) != f.Department {
		return false
	}
	if f.Search == "" {
		return true
	}

	needle := strings.ToLower(f.Search)
	if containsFold(s.Email, needle) || containsFold(s.District, needle) || containsFold(s.NativePlace, needle) {
		return true
	}
	for _, company := range s.CompanyNames {
		if containsFold(company, needle) {
			return true
		}
	}
	return false
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
