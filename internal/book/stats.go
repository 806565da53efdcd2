package book

import (
	"context"
	"sort"
)

// Overview returns the catalog size, the mean of all non-negative parsable prices and
// the occurrences of each rating label exactly as stored.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	books, err := s.loader.Load(ctx)
	if err != nil {
		return Overview{}, err
	}
	return overview(books), nil
}

func overview(books []Book) Overview {
	ov := Overview{
		Total:              len(books),
		RatingDistribution: make(map[string]int),
	}

	var sum float64
	var priced int
	for _, b := range books {
		ov.RatingDistribution[b.RatingLabel]++
		if b.HasPrice && b.Price >= 0 {
			sum += b.Price
			priced++
		}
	}
	if priced > 0 {
		ov.AveragePrice = round2(sum / float64(priced))
	}
	return ov
}

// ByCategory groups books by category, sorted by category name.
// Books without a parsable non-negative price count towards the group but add nothing to its price sum.
func (s *Service) ByCategory(ctx context.Context) ([]CategoryCount, error) {
	books, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return byCategory(books), nil
}

func byCategory(books []Book) []CategoryCount {
	type acc struct {
		count int
		sum   float64
	}
	groups := make(map[string]*acc)
	for _, b := range books {
		if b.Category == "" {
			continue
		}
		g, ok := groups[b.Category]
		if !ok {
			g = &acc{}
			groups[b.Category] = g
		}
		g.count++
		if b.HasPrice && b.Price >= 0 {
			g.sum += b.Price
		}
	}

	out := make([]CategoryCount, 0, len(groups))
	for name, g := range groups {
		out = append(out, CategoryCount{
			Category:     name,
			Count:        g.count,
			AveragePrice: round2(g.sum / float64(g.count)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
