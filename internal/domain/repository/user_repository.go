package repository

import (
	"context"

	"github.com/sazzadh/bookshop-api/internal/domain/entity"
)

// UserRepository persistence port for User (DIP). Lookups return (nil, nil)
// when no record matches; every other failure is a tagged domain error.
type UserRepository interface {
	// Create inserts the user; a duplicate email surfaces as a Conflict error.
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail fetches a user including the password hash and flags,
	// regardless of deletion state (credential checks need both).
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByID fetches a user with the password hash projected out.
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// UpdatePassword atomically sets the hash and passwordChangedAt.
	UpdatePassword(ctx context.Context, id string, hash string) error
	// UpdateProfile applies the partial update and returns the post-image
	// (password projected out); missing user is a NotFound error.
	UpdateProfile(ctx context.Context, id string, update *entity.ProfileUpdate) (*entity.User, error)
}
