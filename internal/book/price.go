package book

import (
	"math"
	"strconv"
	"strings"
)

var currencyReplacer = strings.NewReplacer("£", "", "Â", "", "$", "", "R$", "", "€", "", " ", "")

// ParsePrice reads a price cell such as "51.77", "51,77" or "£51.77".
// The second result is false when the cell is not a finite number.
func ParsePrice(s string) (float64, bool) {
	s = currencyReplacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
