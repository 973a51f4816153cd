package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sazzadh/bookshop-api/internal/domain"
	"github.com/sazzadh/bookshop-api/internal/domain/entity"
	"github.com/sazzadh/bookshop-api/internal/domain/repository"
)

var _ repository.BookRepository = (*BookRepo)(nil)

// BookRepo BookRepository port implementation over the books collection.
type BookRepo struct {
	coll *mongo.Collection
}

// NewBookRepository builds the persistence adapter for the catalog.
func NewBookRepository(db *mongo.Database) *BookRepo {
	return &BookRepo{coll: db.Collection("books")}
}

// Create inserts a new book.
func (r *BookRepo) Create(ctx context.Context, book *entity.Book) error {
	now := time.Now()
	book.ID = primitive.NewObjectID()
	book.CreatedAt = now
	book.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, book); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// FindByID fetches a book by id.
func (r *BookRepo) FindByID(ctx context.Context, id string) (*entity.Book, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewBadRequest("Invalid Requested Data",
			domain.ErrorSource{Path: "_id", Message: fmt.Sprintf("%q is not a valid id", id)})
	}

	var b entity.Book
	err = r.coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find book by id: %w", err)
	}
	return &b, nil
}

// List runs the raw query parameters through the query builder: search over
// the book searchable fields, then filter, sort, paginate and project, with
// count metadata computed against the same filter.
func (r *BookRepo) List(ctx context.Context, params map[string]string) ([]*entity.Book, *repository.ListMeta, error) {
	qb := NewQueryBuilder(r.coll, params).
		Search(entity.BookSearchableFields...).
		Filter().
		Sort().
		Paginate().
		Fields()

	books := []*entity.Book{}
	if err := qb.Find(ctx, &books); err != nil {
		return nil, nil, err
	}
	meta, err := qb.CountTotal(ctx)
	if err != nil {
		return nil, nil, err
	}
	return books, meta, nil
}
