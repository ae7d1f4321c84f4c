package dataset

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber coerces a cell to a float64. Empty cells and non-numeric text
// report ok=false; they are excluded from sums rather than zero-filled.
// Swedish exports occasionally use a decimal comma, which is accepted.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SumNumeric sums the named column, skipping cells that do not parse. An
// absent column sums to 0 so aggregates stay defined when enrichment was
// skipped.
func (f *Frame) SumNumeric(name string) float64 {
	i, ok := f.ColumnIndex(name)
	if !ok {
		return 0
	}
	var sum float64
	for r := 0; r < f.Len(); r++ {
		if v, ok := ParseNumber(f.CellAt(r, i)); ok {
			sum += v
		}
	}
	return sum
}

// Percent computes num/den as a percentage rounded to one decimal. A zero
// denominator yields 0.0 everywhere a rate is computed in this module; it is
// a defined value, not an error.
func Percent(num, den float64) float64 {
	if den == 0 {
		return 0.0
	}
	return Round1(num / den * 100)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
