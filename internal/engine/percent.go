package engine

import (
	"strconv"
	"strings"
)

// NormalizePercent converts a raw minimum-profit cell into a fraction.
// Accepts values like "15%", " 0.2 ", "15"; anything unparseable (including an
// empty cell) normalizes to 0. A parsed value above 1 is read as a percentage
// and divided by 100; values at or below 1 pass through as fractions, so an
// exact 1 means 100%, not 1%.
func NormalizePercent(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if f > 1 {
		return f / 100
	}
	return f
}
