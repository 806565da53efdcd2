package book

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field is a canonical column of the backing store.
type Field string

const (
	FieldNone         Field = ""
	FieldTitle        Field = "title"
	FieldCategory     Field = "category"
	FieldPrice        Field = "price"
	FieldRating       Field = "rating"
	FieldAvailability Field = "availability"
	FieldImage        Field = "image"
)

// fieldSpellings lists accepted header spellings after folding.
var fieldSpellings = map[Field][]string{
	FieldTitle:        {"titulo", "title", "nome", "name"},
	FieldCategory:     {"categoria", "category", "genero", "genre"},
	FieldPrice:        {"preco", "price", "valor"},
	FieldRating:       {"rating", "avaliacao", "nota", "stars"},
	FieldAvailability: {"disponibilidade", "availability", "estoque", "stock"},
	FieldImage:        {"imagem", "image", "image_url", "imageurl", "url_imagem", "capa", "cover"},
}

var fieldIndex = buildFieldIndex()

func buildFieldIndex() map[string]Field {
	idx := make(map[string]Field)
	for field, spellings := range fieldSpellings {
		for _, s := range spellings {
			idx[s] = field
		}
	}
	return idx
}

// FoldHeader strips surrounding whitespace, accents and case from a header cell.
func FoldHeader(raw string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.TrimSpace(raw))
	if err != nil {
		s = strings.TrimSpace(raw)
	}
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), "_")
}

// NormalizeField resolves a raw header to its canonical field, or FieldNone.
// "Título", "titulo" and "TÍTULO" all resolve to FieldTitle.
func NormalizeField(raw string) Field {
	return fieldIndex[FoldHeader(raw)]
}
