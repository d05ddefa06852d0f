package catalog

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=catalog

// Repository defines the contract for catalog storage. Every method is atomic.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	Filter(ctx context.Context, match Matcher) ([]Book, error)
	Insert(ctx context.Context, book Book, conflict Matcher) error
	DeleteWhere(ctx context.Context, match Matcher) (int, []Book, error)
	UpdateFirst(ctx context.Context, match Matcher, fn func(*Book) error) error
}
