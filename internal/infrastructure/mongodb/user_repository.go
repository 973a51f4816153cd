package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sazzadh/bookshop-api/internal/domain"
	"github.com/sazzadh/bookshop-api/internal/domain/entity"
	"github.com/sazzadh/bookshop-api/internal/domain/repository"
	"github.com/sazzadh/bookshop-api/pkg/logger"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo UserRepository port implementation over the users collection.
type UserRepo struct {
	coll *mongo.Collection
	log  *logger.Logger
}

// NewUserRepository builds the persistence adapter for users and ensures
// the unique email index.
func NewUserRepository(db *mongo.Database, log *logger.Logger) *UserRepo {
	coll := db.Collection("users")
	if err := ensureUniqueIndex(coll, "email"); err != nil {
		log.Warn().Err(err).Msg("create unique index on users.email")
	}
	return &UserRepo{coll: coll, log: log}
}

// Create inserts a new user. Email uniqueness is enforced by the store;
// a violation surfaces as a Conflict error.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.NewConflict("User already exists")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByEmail fetches a user by email including the password hash and the
// deletion flag; credential checks need both. Returns (nil, nil) when no
// record matches.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

// FindByID fetches a user by id with the password projected out.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewBadRequest("Invalid Requested Data",
			domain.ErrorSource{Path: "_id", Message: fmt.Sprintf("%q is not a valid id", id)})
	}

	opts := options.FindOne().SetProjection(bson.D{{Key: "password", Value: 0}})
	var u entity.User
	err = r.coll.FindOne(ctx, bson.M{"_id": objectID}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &u, nil
}

// UpdatePassword atomically sets the new hash together with
// passwordChangedAt, invalidating tokens issued before the change.
func (r *UserRepo) UpdatePassword(ctx context.Context, id string, hash string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewBadRequest("Invalid Requested Data",
			domain.ErrorSource{Path: "_id", Message: fmt.Sprintf("%q is not a valid id", id)})
	}

	now := time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{
		"$set": bson.M{
			"password":          hash,
			"passwordChangedAt": now,
			"updatedAt":         now,
		},
	})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("User not found")
	}
	return nil
}

// UpdateProfile applies the partial update in a single atomic operation and
// returns the post-image with the password projected out.
func (r *UserRepo) UpdateProfile(ctx context.Context, id string, update *entity.ProfileUpdate) (*entity.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewBadRequest("Invalid Requested Data",
			domain.ErrorSource{Path: "_id", Message: fmt.Sprintf("%q is not a valid id", id)})
	}

	set := bson.M{"updatedAt": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}
	if update.Role != nil {
		set["role"] = *update.Role
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.D{{Key: "password", Value: 0}})

	var u entity.User
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound("User not found")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.NewConflict("Email already in use")
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &u, nil
}
