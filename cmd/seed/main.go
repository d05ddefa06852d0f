package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"bookshelf/internal/catalog"

	jsoniter "github.com/json-iterator/go"
)

// Writes a catalog seed file usable as CATALOG_SEED_FILE.
// SEED_COUNT=0 (default) writes the built-in records; a positive count
// generates synthetic books instead.
func main() {
	count := 0
	if v := os.Getenv("SEED_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Fatalf("invalid SEED_COUNT %q", v)
		}
		count = n
	}

	books := catalog.DefaultSeed()
	if count > 0 {
		log.Printf("Generating %d books...", count)
		books = generate(rand.New(rand.NewSource(time.Now().UnixNano())), count, time.Now())
	}

	path := os.Getenv("SEED_OUT")
	if path == "" {
		if err := write(os.Stdout, books); err != nil {
			log.Fatalf("Failed to write seed: %v", err)
		}
		log.Printf("Wrote %d books", len(books))
		return
	}

	if err := writeFile(path, books); err != nil {
		log.Fatalf("Failed to write seed: %v", err)
	}
	log.Printf("Wrote %d books", len(books))
}

func generate(rng *rand.Rand, count int, now time.Time) []catalog.Book {
	authors := []string{"Ursula K. Le Guin", "Octavia Butler", "Italo Calvino", "Jorge Luis Borges", "Toni Morrison", "Haruki Murakami", "Chimamanda Ngozi Adichie", "Kazuo Ishiguro"}

	books := make([]catalog.Book, 0, count)
	for i := 0; i < count; i++ {
		b := catalog.Book{
			ID:            1000 + i,
			Title:         fmt.Sprintf("%s %s %d", getRandomWord(rng), getRandomWord(rng), i+1),
			Author:        authors[rng.Intn(len(authors))],
			InShelf:       true,
			TimesBorrowed: rng.Intn(20),
		}
		if rng.Intn(4) == 0 {
			borrowed := now.AddDate(0, 0, -rng.Intn(30)).Truncate(time.Second)
			b.InShelf = false
			b.BorrowDate = &borrowed
		}
		books = append(books, b)
	}
	return books
}

func write(w io.Writer, books []catalog.Book) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(books)
}

func writeFile(path string, books []catalog.Book) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f, books); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func getRandomWord(rng *rand.Rand) string {
	words := []string{"Silent", "Glass", "Northern", "Paper", "Hidden", "River", "Atlas", "Winter", "Orchard", "Signal", "Lantern", "Harbor"}
	return words[rng.Intn(len(words))]
}
