package book

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStore = "Título;Categoria;Preço;Rating;Disponibilidade;Imagem\n" +
	"A Light in the Attic;Poetry;51.77;Three;In stock;https://example.com/a.jpg\n" +
	"Tipping the Velvet;Historical Fiction;53,74;One;In stock;https://example.com/b.jpg\n" +
	"Soumission;Fiction;50.10;5;In stock;https://example.com/c.jpg\n"

func writeStore(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVLoader_Load(t *testing.T) {
	books, err := NewCSVLoader(writeStore(t, sampleStore)).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 3)

	first := books[0]
	assert.Equal(t, "A Light in the Attic", first.Title)
	assert.Equal(t, "Poetry", first.Category)
	assert.InDelta(t, 51.77, first.Price, 1e-9)
	assert.True(t, first.HasPrice)
	assert.Equal(t, Rating(3), first.Rating)
	assert.Equal(t, "Three", first.RatingLabel)
	assert.Equal(t, "In stock", first.Availability)
	assert.Equal(t, "https://example.com/a.jpg", first.ImageURL)
	assert.Equal(t, "51.77", first.Raw["Preço"])

	assert.InDelta(t, 53.74, books[1].Price, 1e-9)
	assert.Equal(t, Rating(5), books[2].Rating)
}

func TestReadBooks_BOMAndWhitespace(t *testing.T) {
	content := "\xEF\xBB\xBF  TÍTULO ; categoria ;preco\n  Dune  ;  Sci-Fi ; 9.99 \n"
	books, err := ReadBooks(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, books, 1)

	b := books[0]
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, "Sci-Fi", b.Category)
	assert.InDelta(t, 9.99, b.Price, 1e-9)
	// Absent columns are defaulted, never omitted.
	assert.Equal(t, "", b.Availability)
	assert.Equal(t, RatingUnknown, b.Rating)
}

func TestReadBooks_UnknownColumnsDropped(t *testing.T) {
	content := "Título;Autor;Preço\nDune;Frank Herbert;9.99\n"
	books, err := ReadBooks(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Frank Herbert", books[0].Raw["Autor"])
}

func TestReadBooks_DuplicateHeaderFirstWins(t *testing.T) {
	content := "Título;Title\nfirst;second\n"
	books, err := ReadBooks(strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "first", books[0].Title)
}

func TestReadBooks_ShortRow(t *testing.T) {
	content := "Título;Categoria;Preço\nDune\n"
	books, err := ReadBooks(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "", books[0].Category)
	assert.False(t, books[0].HasPrice)
}

func TestReadBooks_HeaderOnly(t *testing.T) {
	books, err := ReadBooks(strings.NewReader("Título;Categoria\n"))
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestReadBooks_Corrupt(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"comma delimited": "Título,Categoria,Preço\nDune,Sci-Fi,9.99\n",
		"invalid utf8":    "Título;Categoria\nDu\xffne;Sci-Fi\n",
		"bare quote":      "Título;Categoria\nDu\"ne;Sci-Fi\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadBooks(strings.NewReader(content))
			assert.ErrorIs(t, err, ErrDataCorrupt)
		})
	}
}

func TestCSVLoader_MissingFile(t *testing.T) {
	_, err := NewCSVLoader(filepath.Join(t.TempDir(), "missing.csv")).Load(context.Background())
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestCSVLoader_ReloadsEveryCall(t *testing.T) {
	path := writeStore(t, sampleStore)
	loader := NewCSVLoader(path)

	books, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 3)

	require.NoError(t, os.WriteFile(path, []byte("Título\nOnly\n"), 0o644))
	books, err = loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
}
