package ml

import (
	"context"

	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/book"
)

type Service struct {
	loader book.Loader
}

func NewService(loader book.Loader) *Service {
	return &Service{loader: loader}
}

// Features projects every book onto the model input fields. Unparsable prices become 0.
func (s *Service) Features(ctx context.Context) ([]Feature, error) {
	books, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Feature, 0, len(books))
	for _, b := range books {
		out = append(out, Feature{
			Title:        b.Title,
			Category:     b.Category,
			Price:        b.Price,
			Rating:       b.RatingLabel,
			Availability: b.Availability,
		})
	}
	return out, nil
}

// TrainingData returns the rows untouched, keyed by the header names of the store.
func (s *Service) TrainingData(ctx context.Context) ([]map[string]string, error) {
	books, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Raw)
	}
	return out, nil
}

// Predict applies the price-tier rule.
func Predict(in PredictionInput) Prediction {
	label := LabelPopular
	if in.Price != nil && *in.Price > LuxuryThreshold {
		label = LabelLuxury
	}
	return Prediction{Inputs: in, PredictedLabel: label}
}
