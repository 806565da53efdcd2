package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
)

var header = []string{"Título", "Categoria", "Preço", "Rating", "Disponibilidade", "Imagem"}

var (
	categories = []string{"Fiction", "Science Fiction", "History", "Science", "Poetry", "Romance", "Mystery", "Biography", "Philosophy", "Art"}
	ratings    = []string{"One", "Two", "Three", "Four", "Five"}
	words      = []string{"Shadow", "Light", "River", "Mountain", "Ocean", "Forest", "City", "Dream", "Journey", "Secret"}
)

func main() {
	var (
		out   = flag.String("out", "data/livros_completo.csv", "Path of the store to write")
		count = flag.Int("count", 1000, "Number of books")
		seed  = flag.Int64("seed", 1, "Random seed")
	)
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create store: %v", err)
	}
	defer f.Close()

	if err := writeStore(f, *count, rand.New(rand.NewSource(*seed))); err != nil {
		log.Fatalf("Failed to write store: %v", err)
	}
	log.Printf("Wrote %d books to %s", *count, *out)
}

// writeStore emits a BOM-prefixed, semicolon-delimited store like the scraper produces.
func writeStore(w io.Writer, count int, rng *rand.Rand) error {
	if _, err := w.Write([]byte("\xEF\xBB\xBF")); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		price := 10 + rng.Float64()*50
		row := []string{
			fmt.Sprintf("Book Title %d - The %s %s", i+1, words[rng.Intn(len(words))], words[rng.Intn(len(words))]),
			categories[rng.Intn(len(categories))],
			strconv.FormatFloat(price, 'f', 2, 64),
			ratings[rng.Intn(len(ratings))],
			"In stock",
			fmt.Sprintf("https://books.toscrape.com/media/cache/%04d.jpg", i+1),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
