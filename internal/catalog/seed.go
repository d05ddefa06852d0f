package catalog

import (
	"fmt"
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
)

func borrowedOn(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// DefaultSeed returns the records the catalog starts with.
func DefaultSeed() []Book {
	return []Book{
		{ID: 101, Title: "The Pragmatic Programmer 1", Author: "Andrew Hunt", InShelf: true, TimesBorrowed: 5},
		{ID: 203, Title: "Clean Code 4", Author: "Robert C. Martin", InShelf: false, TimesBorrowed: 12, BorrowDate: borrowedOn(2025, time.April, 1)},
		{ID: 283, Title: "Introduction to Algorithms 5", Author: "Thomas H. Cormen", InShelf: true, TimesBorrowed: 7},
		{ID: 428, Title: "Design Patterns 6", Author: "Erich Gamma", InShelf: true, TimesBorrowed: 4},
		{ID: 285, Title: "Python Crash Course 2", Author: "Eric Matthes", InShelf: false, TimesBorrowed: 8, BorrowDate: borrowedOn(2025, time.April, 15)},
		{ID: 628, Title: "Data Science from Scratch 7", Author: "Joel Grus", InShelf: true, TimesBorrowed: 3},
		{ID: 773, Title: "You Don't Know JS 3", Author: "Kyle Simpson", InShelf: true, TimesBorrowed: 6},
		{ID: 838, Title: "Deep Learning 9", Author: "Ian Goodfellow", InShelf: true, TimesBorrowed: 2},
		{ID: 937, Title: "Fluent Python 8", Author: "Luciano Ramalho", InShelf: true, TimesBorrowed: 12},
		{ID: 100, Title: "Effective Java 10", Author: "Joshua Bloch", InShelf: false, TimesBorrowed: 9, BorrowDate: borrowedOn(2025, time.April, 25)},
	}
}

// LoadSeed decodes a JSON array of books. Records that are out without a
// borrow date are stamped with now; records on the shelf lose theirs.
func LoadSeed(r io.Reader, now time.Time) ([]Book, error) {
	var books []Book
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(r).Decode(&books); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	for i := range books {
		books[i] = normalize(books[i], now)
	}
	return books, nil
}

// LoadSeedFile reads a seed file; an empty path yields DefaultSeed.
func LoadSeedFile(path string, now time.Time) ([]Book, error) {
	if path == "" {
		return DefaultSeed(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return LoadSeed(f, now)
}
