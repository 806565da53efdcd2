package book

import "errors"

var (
	// ErrNotFound is returned when a query matches no book or an index is out of range.
	ErrNotFound = errors.New("book not found")
	// ErrDataUnavailable is returned when the backing store is missing or unreadable.
	ErrDataUnavailable = errors.New("book data unavailable")
	// ErrDataCorrupt is returned when the backing store cannot be parsed.
	ErrDataCorrupt = errors.New("book data corrupt")
)

// Book is one catalog row after its columns have been resolved to canonical fields.
type Book struct {
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Rating       Rating  `json:"rating"`
	RatingLabel  string  `json:"rating_label"`
	Availability string  `json:"availability"`
	ImageURL     string  `json:"image_url"`

	// PriceText is the price cell as stored; HasPrice reports whether it parsed.
	PriceText string `json:"-"`
	HasPrice  bool   `json:"-"`

	// Raw holds the row keyed by the original header names.
	Raw map[string]string `json:"-"`
}

// CategoryCount is one row of the per-category statistics.
type CategoryCount struct {
	Category     string  `json:"category"`
	Count        int     `json:"count"`
	AveragePrice float64 `json:"average_price"`
}

// Overview summarizes the whole catalog.
type Overview struct {
	Total              int            `json:"total"`
	AveragePrice       float64        `json:"average_price"`
	RatingDistribution map[string]int `json:"rating_distribution"`
}

// SearchQuery filters books. Empty fields match everything.
type SearchQuery struct {
	Title    string
	Category string
}
