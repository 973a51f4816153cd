package repository

import (
	"context"

	"github.com/sazzadh/bookshop-api/internal/domain/entity"
)

// ListMeta pagination metadata returned alongside a listing.
type ListMeta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// BookRepository persistence port for the book catalog.
type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	FindByID(ctx context.Context, id string) (*entity.Book, error)
	// List runs the raw query parameters through the query builder and
	// returns the matching page plus count metadata.
	List(ctx context.Context, params map[string]string) ([]*entity.Book, *ListMeta, error)
}
