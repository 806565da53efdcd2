package book

import (
	"context"
	"sort"
	"strings"
)

// Service answers catalog queries over a freshly loaded dataset.
type Service struct {
	loader Loader
}

// NewService creates a new book service.
func NewService(loader Loader) *Service {
	return &Service{loader: loader}
}

// List returns every book in store order.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.loader.Load(ctx)
}

// Count returns the number of books in the store.
func (s *Service) Count(ctx context.Context) (int, error) {
	books, err := s.loader.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(books), nil
}

// GetByIndex returns the book at a zero-based position of the current store.
// Positions are only stable while the store is unchanged.
func (s *Service) GetByIndex(ctx context.Context, index int) (Book, error) {
	books, err := s.loader.Load(ctx)
	if err != nil {
		return Book{}, err
	}
	if index < 0 || index >= len(books) {
		return Book{}, ErrNotFound
	}
	return books[index], nil
}

// Search matches a case-insensitive title substring and a case-insensitive exact category.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]Book, error) {
	books, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	title := strings.ToLower(strings.TrimSpace(q.Title))
	category := strings.TrimSpace(q.Category)

	var out []Book
	for _, b := range books {
		if title != "" && !strings.Contains(strings.ToLower(b.Title), title) {
			continue
		}
		if category != "" && !strings.EqualFold(b.Category, category) {
			continue
		}
		out = append(out, b)
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

// Categories returns the distinct non-empty categories in ascending order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	books, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, b := range books {
		if b.Category == "" {
			continue
		}
		if _, ok := seen[b.Category]; ok {
			continue
		}
		seen[b.Category] = struct{}{}
		out = append(out, b.Category)
	}
	sort.Strings(out)
	return out, nil
}

// PriceRange returns books priced within [min, max]. Books without a parsable price are skipped.
func (s *Service) PriceRange(ctx context.Context, min, max float64) ([]Book, error) {
	books, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	var out []Book
	for _, b := range books {
		if !b.HasPrice {
			continue
		}
		if b.Price >= min && b.Price <= max {
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

// TopRated returns every book tied at the highest rating in the store.
func (s *Service) TopRated(ctx context.Context) ([]Book, error) {
	books, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return topRated(books), nil
}

func topRated(books []Book) []Book {
	out := make([]Book, 0)
	if len(books) == 0 {
		return out
	}

	best := RatingUnknown
	for _, b := range books {
		if b.Rating > best {
			best = b.Rating
		}
	}
	for _, b := range books {
		if b.Rating == best {
			out = append(out, b)
		}
	}
	return out
}
