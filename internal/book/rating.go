package book

import (
	"strconv"
	"strings"
)

// Rating is a star rating on a 1..5 scale. Zero means the stored value was not understood.
type Rating int

const (
	RatingUnknown Rating = 0
	RatingMin     Rating = 1
	RatingMax     Rating = 5
)

var ratingWords = map[string]Rating{
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
}

// ParseRating accepts digits ("4") or English number words ("four", "Four").
func ParseRating(s string) Rating {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RatingUnknown
	}
	if n, err := strconv.Atoi(s); err == nil {
		if Rating(n) < RatingMin || Rating(n) > RatingMax {
			return RatingUnknown
		}
		return Rating(n)
	}
	return ratingWords[s]
}
