package usecase

import (
	"context"

	"github.com/sazzadh/bookshop-api/internal/application/dto"
	"github.com/sazzadh/bookshop-api/internal/domain"
	"github.com/sazzadh/bookshop-api/internal/domain/entity"
	"github.com/sazzadh/bookshop-api/internal/domain/repository"
)

// BookUseCase catalog listing and management.
type BookUseCase struct {
	books repository.BookRepository
}

// NewBookUseCase builds the book usecase.
func NewBookUseCase(books repository.BookRepository) *BookUseCase {
	return &BookUseCase{books: books}
}

// List resolves a listing request through the query builder and returns the
// page plus count metadata.
func (uc *BookUseCase) List(ctx context.Context, params map[string]string) ([]*entity.Book, *repository.ListMeta, error) {
	return uc.books.List(ctx, params)
}

// GetByID fetches a single book.
func (uc *BookUseCase) GetByID(ctx context.Context, id string) (*entity.Book, error) {
	book, err := uc.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.NewNotFound("Book not found")
	}
	return book, nil
}

// Create adds a book to the catalog.
func (uc *BookUseCase) Create(ctx context.Context, in dto.CreateBookRequest) (*entity.Book, error) {
	book := &entity.Book{
		Title:       in.Title,
		Author:      in.Author,
		Genre:       in.Genre,
		Description: in.Description,
		Price:       in.Price,
		Discount:    in.Discount,
		Featured:    in.Featured,
		InStock:     in.InStock,
	}
	if err := uc.books.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}
