package book

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

const storeDelimiter = ';'

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVLoader reads the semicolon-delimited backing store on every Load.
type CSVLoader struct {
	path string
}

func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{path: path}
}

func (l *CSVLoader) Load(ctx context.Context) ([]Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer f.Close()

	return ReadBooks(f)
}

// ReadBooks parses a backing store. Columns are resolved once from the header;
// unknown columns are kept only in Book.Raw.
func ReadBooks(r io.Reader) ([]Book, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.Comma = storeDelimiter
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header row", ErrDataCorrupt)
		}
		return nil, classifyReadError(err)
	}

	columns, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	books := make([]Book, 0, 64)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, classifyReadError(err)
		}
		if err := checkEncoding(record); err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: %v", ErrDataCorrupt, line, err)
		}
		books = append(books, newBook(header, columns, record))
	}
	return books, nil
}

func resolveColumns(header []string) ([]Field, error) {
	if err := checkEncoding(header); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrDataCorrupt, err)
	}

	columns := make([]Field, len(header))
	seen := make(map[Field]bool, len(header))
	for i, h := range header {
		f := NormalizeField(h)
		if f == FieldNone || seen[f] {
			continue
		}
		columns[i] = f
		seen[f] = true
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("%w: no recognizable columns in header %q", ErrDataCorrupt, strings.Join(header, string(storeDelimiter)))
	}
	return columns, nil
}

func newBook(header []string, columns []Field, record []string) Book {
	b := Book{Raw: make(map[string]string, len(header))}
	for i, cell := range record {
		cell = strings.TrimSpace(cell)
		if i < len(header) {
			b.Raw[strings.TrimSpace(header[i])] = cell
		}
		if i >= len(columns) {
			continue
		}
		switch columns[i] {
		case FieldTitle:
			b.Title = cell
		case FieldCategory:
			b.Category = cell
		case FieldPrice:
			b.PriceText = cell
		case FieldRating:
			b.RatingLabel = cell
		case FieldAvailability:
			b.Availability = cell
		case FieldImage:
			b.ImageURL = cell
		}
	}
	b.Price, b.HasPrice = ParsePrice(b.PriceText)
	b.Rating = ParseRating(b.RatingLabel)
	return b
}

func checkEncoding(cells []string) error {
	for _, c := range cells {
		if !utf8.ValidString(c) {
			return errors.New("invalid UTF-8")
		}
	}
	return nil
}

func classifyReadError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w: %v", ErrDataCorrupt, err)
	}
	return fmt.Errorf("%w: %v", ErrDataUnavailable, err)
}
