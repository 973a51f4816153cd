package usecase

import (
	"context"

	"github.com/sazzadh/bookshop-api/internal/application/dto"
	"github.com/sazzadh/bookshop-api/internal/domain"
	"github.com/sazzadh/bookshop-api/internal/domain/entity"
	"github.com/sazzadh/bookshop-api/internal/domain/repository"
	pkgjwt "github.com/sazzadh/bookshop-api/pkg/jwt"
)

// UserUseCase profile retrieval and update for the authenticated user.
type UserUseCase struct {
	users repository.UserRepository
}

// NewUserUseCase builds the user usecase.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// GetMyProfile returns the caller's profile, password projected out.
func (uc *UserUseCase) GetMyProfile(ctx context.Context, claims *pkgjwt.Claims) (*entity.User, error) {
	if claims == nil {
		return nil, domain.NewUnauthorized("User not authenticated")
	}
	user, err := uc.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFound("User not found")
	}
	return user, nil
}

// UpdateMyProfile applies a partial profile update and returns the updated
// record.
func (uc *UserUseCase) UpdateMyProfile(ctx context.Context, claims *pkgjwt.Claims, in dto.UpdateProfileRequest) (*entity.User, error) {
	if claims == nil {
		return nil, domain.NewUnauthorized("User not authenticated")
	}

	update := &entity.ProfileUpdate{
		Email: in.Email,
		Image: in.Image,
		Role:  in.Role,
	}
	if in.Name != nil {
		update.Name = &entity.UserName{
			FirstName:  in.Name.FirstName,
			MiddleName: in.Name.MiddleName,
			LastName:   in.Name.LastName,
		}
	}
	return uc.users.UpdateProfile(ctx, claims.UserID, update)
}
