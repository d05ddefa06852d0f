package catalog

import (
	"context"
	"sync"
)

// MemoryStore keeps the catalog in process memory in insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	books []Book
}

func NewMemoryStore(seed []Book) *MemoryStore {
	books := make([]Book, 0, len(seed))
	for _, b := range seed {
		books = append(books, clone(b))
	}
	return &MemoryStore{books: books}
}

func (s *MemoryStore) List(ctx context.Context) ([]Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(), nil
}

func (s *MemoryStore) Filter(ctx context.Context, match Matcher) ([]Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Book{}
	for _, b := range s.books {
		if match(b) {
			out = append(out, clone(b))
		}
	}
	return out, nil
}

func (s *MemoryStore) Insert(ctx context.Context, book Book, conflict Matcher) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conflict != nil {
		for _, b := range s.books {
			if conflict(b) {
				return ErrAlreadyExists
			}
		}
	}
	s.books = append(s.books, clone(book))
	return nil
}

// DeleteWhere removes every matching record, including consecutive duplicates.
func (s *MemoryStore) DeleteWhere(ctx context.Context, match Matcher) (int, []Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.books[:0]
	removed := 0
	for _, b := range s.books {
		if match(b) {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	clear(s.books[len(kept):])
	s.books = kept
	return removed, s.snapshot(), nil
}

// UpdateFirst applies fn to a copy of the first match and stores it only if fn succeeds.
func (s *MemoryStore) UpdateFirst(ctx context.Context, match Matcher, fn func(*Book) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.books {
		if !match(b) {
			continue
		}
		updated := clone(b)
		if err := fn(&updated); err != nil {
			return err
		}
		s.books[i] = updated
		return nil
	}
	return ErrNotFound
}

func (s *MemoryStore) snapshot() []Book {
	out := make([]Book, len(s.books))
	for i, b := range s.books {
		out[i] = clone(b)
	}
	return out
}
