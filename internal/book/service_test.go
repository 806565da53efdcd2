package book

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkBook(title, category, price, rating string) Book {
	b := Book{Title: title, Category: category, PriceText: price, RatingLabel: rating}
	b.Price, b.HasPrice = ParsePrice(price)
	b.Rating = ParseRating(rating)
	return b
}

func fixture() []Book {
	return []Book{
		mkBook("Harry Potter and the Sorcerer's Stone", "Fantasy", "20.00", "Three"),
		mkBook("The Hobbit", "Fantasy", "30,50", "5"),
		mkBook("Sapiens", "History", "45.10", "five"),
		mkBook("Broken Price", "History", "n/a", "One"),
		mkBook("No Category", "", "10.00", "Two"),
	}
}

func newTestService(t *testing.T, books []Book, err error) *Service {
	t.Helper()
	ctrl := gomock.NewController(t)
	loader := NewMockLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(books, err).AnyTimes()
	return NewService(loader)
}

func TestService_GetByIndex(t *testing.T) {
	svc := newTestService(t, []Book{mkBook("Only", "X", "1", "1")}, nil)

	b, err := svc.GetByIndex(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "Only", b.Title)

	_, err = svc.GetByIndex(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByIndex(context.Background(), -1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Search(t *testing.T) {
	svc := newTestService(t, fixture(), nil)
	ctx := context.Background()

	t.Run("no filters returns everything", func(t *testing.T) {
		books, err := svc.Search(ctx, SearchQuery{})
		require.NoError(t, err)
		assert.Len(t, books, 5)
	})

	t.Run("title is case-insensitive substring", func(t *testing.T) {
		books, err := svc.Search(ctx, SearchQuery{Title: "HARRY"})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Harry Potter and the Sorcerer's Stone", books[0].Title)
	})

	t.Run("category is case-insensitive exact", func(t *testing.T) {
		books, err := svc.Search(ctx, SearchQuery{Category: "fantasy"})
		require.NoError(t, err)
		assert.Len(t, books, 2)

		_, err = svc.Search(ctx, SearchQuery{Category: "fant"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("filters are combined", func(t *testing.T) {
		books, err := svc.Search(ctx, SearchQuery{Title: "the", Category: "FANTASY"})
		require.NoError(t, err)
		assert.Len(t, books, 2)

		_, err = svc.Search(ctx, SearchQuery{Title: "sapiens", Category: "Fantasy"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Categories(t *testing.T) {
	svc := newTestService(t, fixture(), nil)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Fantasy", "History"}, categories)
}

func TestService_PriceRange(t *testing.T) {
	svc := newTestService(t, fixture(), nil)
	ctx := context.Background()

	books, err := svc.PriceRange(ctx, 20, 30.5)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Harry Potter and the Sorcerer's Stone", books[0].Title)
	assert.Equal(t, "The Hobbit", books[1].Title)

	// Unparsable prices are skipped, not an error.
	books, err = svc.PriceRange(ctx, 0, 1000)
	require.NoError(t, err)
	assert.Len(t, books, 4)

	_, err = svc.PriceRange(ctx, 50, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_TopRated(t *testing.T) {
	books := []Book{
		mkBook("a", "X", "1", "3"),
		mkBook("b", "X", "1", "five"),
		mkBook("c", "X", "1", "5"),
		mkBook("d", "X", "1", "One"),
	}
	svc := newTestService(t, books, nil)

	top, err := svc.TopRated(context.Background())
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].Title)
	assert.Equal(t, "c", top[1].Title)

	empty := newTestService(t, nil, nil)
	top, err = empty.TopRated(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, top)
	assert.Empty(t, top)
}

func TestService_Overview(t *testing.T) {
	svc := newTestService(t, fixture(), nil)

	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, ov.Total)
	// (20 + 30.5 + 45.1 + 10) / 4
	assert.InDelta(t, 26.4, ov.AveragePrice, 1e-9)
	assert.Equal(t, map[string]int{"Three": 1, "5": 1, "five": 1, "One": 1, "Two": 1}, ov.RatingDistribution)
}

func TestService_ByCategory(t *testing.T) {
	books := fixture()
	svc := newTestService(t, books, nil)

	groups, err := svc.ByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "Fantasy", groups[0].Category)
	assert.Equal(t, 2, groups[0].Count)
	assert.InDelta(t, 25.25, groups[0].AveragePrice, 1e-9)

	assert.Equal(t, "History", groups[1].Category)
	assert.Equal(t, 2, groups[1].Count)
	assert.InDelta(t, 22.55, groups[1].AveragePrice, 1e-9)

	var total, weighted float64
	for _, b := range books {
		if b.Category != "" && b.HasPrice && b.Price >= 0 {
			total += b.Price
		}
	}
	for _, g := range groups {
		weighted += g.AveragePrice * float64(g.Count)
	}
	assert.InDelta(t, total, weighted, 0.01*float64(len(groups)))
}

func TestService_NegativePricesSkippedInBothAggregates(t *testing.T) {
	svc := newTestService(t, []Book{
		mkBook("Refund", "X", "-40", "One"),
		mkBook("Regular", "X", "20", "Two"),
	}, nil)
	ctx := context.Background()

	ov, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, ov.AveragePrice, 1e-9)

	groups, err := svc.ByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].Count)
	// the negative row counts towards the group like an unparsable one
	assert.InDelta(t, 10.0, groups[0].AveragePrice, 1e-9)
}

func TestService_LoadErrorPropagates(t *testing.T) {
	svc := newTestService(t, nil, ErrDataUnavailable)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, ErrDataUnavailable)
	_, err = svc.Search(context.Background(), SearchQuery{})
	assert.ErrorIs(t, err, ErrDataUnavailable)
	_, err = svc.ByCategory(context.Background())
	assert.ErrorIs(t, err, ErrDataUnavailable)
}
