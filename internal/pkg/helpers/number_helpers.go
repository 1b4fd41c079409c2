package helpers

import (
	"math"
	"strconv"
)

// Round2 rounds half away from zero to two decimal places. The scaling is
// done on the shortest decimal form of v, so 1.005 rounds as written.
func Round2(v float64) float64 {
	scaled, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', -1, 64)+"e2", 64)
	if err != nil {
		return v
	}
	return math.Round(scaled) / 100
}

// Percentage returns part/total*100 rounded to two decimals, or 0 when
// total is not positive.
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round2(float64(part) / float64(total) * 100)
}

// Average returns sum/count rounded to two decimals, or 0 for no samples.
func Average(sum float64, count int) float64 {
	if count <= 0 {
		return 0
	}
	return Round2(sum / float64(count))
}
