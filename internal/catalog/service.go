package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Service provides the catalog operations exposed over HTTP.
type Service struct {
	repo  Repository
	fines FinePolicy
	now   func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithFinePolicy(p FinePolicy) Option {
	return func(s *Service) { s.fines = p }
}

// NewService creates a new catalog service.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		fines: DefaultFinePolicy(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every book in insertion order.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

// FindByTitle returns all books with the given title, or ErrNotFound.
func (s *Service) FindByTitle(ctx context.Context, title string) ([]Book, error) {
	return s.find(ctx, TitleIs(title))
}

// FindByAuthor returns all books by the given author, or ErrNotFound.
func (s *Service) FindByAuthor(ctx context.Context, author string) ([]Book, error) {
	return s.find(ctx, AuthorIs(author))
}

func (s *Service) find(ctx context.Context, match Matcher) ([]Book, error) {
	books, err := s.repo.Filter(ctx, match)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNotFound
	}
	return books, nil
}

// Add appends a new book on the shelf and returns the updated catalog.
// It returns ErrAlreadyExists when the title and author pair is already present.
func (s *Service) Add(ctx context.Context, title, author string, id int) ([]Book, error) {
	book := Book{ID: id, Title: title, Author: author, InShelf: true}
	if err := s.repo.Insert(ctx, book, SameWork(title, author)); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// DeleteByTitle removes every book with the given title.
func (s *Service) DeleteByTitle(ctx context.Context, title string) (DeleteResult, error) {
	removed, books, err := s.repo.DeleteWhere(ctx, TitleIs(title))
	if err != nil {
		return DeleteResult{}, fmt.Errorf("delete %q: %w", title, err)
	}
	status := StatusDeleteMiss
	if removed > 0 {
		status = StatusDeleted
	}
	return DeleteResult{Status: status, Books: books}, nil
}

// Borrow takes the first book matching value on field off the shelf.
func (s *Service) Borrow(ctx context.Context, field Field, value string) (string, error) {
	err := s.repo.UpdateFirst(ctx, field.matcher(value), func(b *Book) error {
		if !b.InShelf {
			return ErrNotInShelf
		}
		now := s.now()
		b.InShelf = false
		b.BorrowDate = &now
		b.TimesBorrowed++
		return nil
	})
	switch {
	case err == nil:
		return StatusBorrowed, nil
	case errors.Is(err, ErrNotInShelf):
		return StatusNotInShelf, nil
	case errors.Is(err, ErrNotFound):
		return StatusNotFound, nil
	default:
		return "", fmt.Errorf("borrow by %s: %w", field, err)
	}
}

// Return puts the first book matching value on field back on the shelf and
// charges a fine for the time it was out.
func (s *Service) Return(ctx context.Context, field Field, value string) (ReturnResult, error) {
	fine := 0
	err := s.repo.UpdateFirst(ctx, field.matcher(value), func(b *Book) error {
		if b.InShelf {
			return ErrAlreadyInShelf
		}
		if b.BorrowDate != nil {
			fine = s.fines.Fine(*b.BorrowDate, s.now())
		}
		b.InShelf = true
		b.BorrowDate = nil
		return nil
	})
	switch {
	case err == nil:
		return ReturnResult{Fine: fine, Status: StatusReturned}, nil
	case errors.Is(err, ErrAlreadyInShelf):
		return ReturnResult{Fine: 0, Status: StatusAlreadyInShelf}, nil
	case errors.Is(err, ErrNotFound):
		return ReturnResult{Fine: 0, Status: StatusNotFound}, nil
	default:
		return ReturnResult{}, fmt.Errorf("return by %s: %w", field, err)
	}
}

func (s *Service) Borrowed(ctx context.Context) ([]Book, error) {
	return s.repo.Filter(ctx, Borrowed)
}

func (s *Service) Available(ctx context.Context) ([]Book, error) {
	return s.repo.Filter(ctx, InShelf)
}

// MostBorrowed returns every book tied for the highest borrow count.
func (s *Service) MostBorrowed(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []Book{}
	if len(books) == 0 {
		return out, nil
	}
	most := books[0].TimesBorrowed
	for _, b := range books[1:] {
		if b.TimesBorrowed > most {
			most = b.TimesBorrowed
		}
	}
	for _, b := range books {
		if b.TimesBorrowed == most {
			out = append(out, b)
		}
	}
	return out, nil
}

// PrimeSuffix returns books whose first number in the title is prime.
func (s *Service) PrimeSuffix(ctx context.Context) ([]Book, error) {
	return s.repo.Filter(ctx, HasPrimeSuffix)
}
