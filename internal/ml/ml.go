// Package ml serves the catalog in shapes suited to model training, plus a
// rule-based stand-in for a real price-tier classifier.
package ml

// LuxuryThreshold is the price above which a book is labelled luxury.
const LuxuryThreshold = 50.0

const (
	LabelLuxury  = "luxury"
	LabelPopular = "popular"
)

// Feature is the reduced projection of a book used as model input.
type Feature struct {
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Rating       string  `json:"rating"`
	Availability string  `json:"availability"`
}

// PredictionInput is the body of a prediction request.
type PredictionInput struct {
	Title        string   `json:"title" validate:"max=512"`
	Category     string   `json:"category" validate:"max=256"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	Rating       string   `json:"rating" validate:"max=32"`
	Availability string   `json:"availability" validate:"max=256"`
}

type Prediction struct {
	Inputs         PredictionInput `json:"inputs"`
	PredictedLabel string          `json:"predicted_label"`
}
