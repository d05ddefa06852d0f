package catalog

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when no book matches a lookup.
	ErrNotFound = errors.New("book not found")
	// ErrAlreadyExists is returned when a book with the same title and author is present.
	ErrAlreadyExists = errors.New("book already exists")
	// ErrNotInShelf is returned when borrowing a book that is already out.
	ErrNotInShelf = errors.New("book not in shelf")
	// ErrAlreadyInShelf is returned when returning a book that was never borrowed.
	ErrAlreadyInShelf = errors.New("book already in shelf")
)

// Book is a single catalog record. BorrowDate is set only while the book is out.
type Book struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	InShelf       bool       `json:"in_shelf"`
	TimesBorrowed int        `json:"times_borrowed"`
	BorrowDate    *time.Time `json:"borrow_date,omitempty"`
}

// Matcher selects books for filter, delete and update operations.
type Matcher func(Book) bool

// TitleIs matches titles case-insensitively.
func TitleIs(title string) Matcher {
	return func(b Book) bool {
		return strings.EqualFold(b.Title, title)
	}
}

// AuthorIs matches authors case-insensitively.
func AuthorIs(author string) Matcher {
	return func(b Book) bool {
		return strings.EqualFold(b.Author, author)
	}
}

// SameWork matches a book with both the given title and author.
func SameWork(title, author string) Matcher {
	byTitle, byAuthor := TitleIs(title), AuthorIs(author)
	return func(b Book) bool {
		return byTitle(b) && byAuthor(b)
	}
}

func InShelf(b Book) bool { return b.InShelf }

func Borrowed(b Book) bool { return !b.InShelf }

// Field names the attribute a borrow or return is keyed on.
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
)

func (f Field) matcher(value string) Matcher {
	if f == FieldAuthor {
		return AuthorIs(value)
	}
	return TitleIs(value)
}

// Status strings reported to clients.
const (
	StatusNotFoundLookup = "Book not Found"
	StatusAlreadyExists  = "Book already exists"
	StatusAdded          = "New book added"
	StatusDeleted        = "Book Deleted"
	StatusDeleteMiss     = "Not found"
	StatusBorrowed       = "Book has been borrowed"
	StatusNotInShelf     = "Book not in shelf"
	StatusNotFound       = "Book Not Found"
	StatusReturned       = "Book has been Returned"
	StatusAlreadyInShelf = "Book already in shelf"
)

// ReturnResult carries the fine charged and the outcome of a return.
type ReturnResult struct {
	Fine   int    `json:"fine"`
	Status string `json:"status"`
}

// DeleteResult carries the outcome of a delete and the resulting catalog.
type DeleteResult struct {
	Status string `json:"status"`
	Books  []Book `json:"books"`
}

// AddResult is the confirmation returned after a successful add.
type AddResult struct {
	Reply string `json:"reply"`
	Books []Book `json:"books"`
}

func clone(b Book) Book {
	if b.BorrowDate != nil {
		t := *b.BorrowDate
		b.BorrowDate = &t
	}
	return b
}

// normalize enforces that BorrowDate is present exactly when the book is out.
func normalize(b Book, now time.Time) Book {
	if b.InShelf {
		b.BorrowDate = nil
	} else if b.BorrowDate == nil {
		t := now
		b.BorrowDate = &t
	}
	if b.TimesBorrowed < 0 {
		b.TimesBorrowed = 0
	}
	return b
}
