package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sazzadh/bookshop-api/internal/application/dto"
	"github.com/sazzadh/bookshop-api/internal/domain"
	"github.com/sazzadh/bookshop-api/internal/domain/entity"
	"github.com/sazzadh/bookshop-api/internal/domain/repository"
	pkgjwt "github.com/sazzadh/bookshop-api/pkg/jwt"
)

// Config token lifetimes and secrets for the auth workflow. Reset tokens are
// signed with the access secret and a short TTL.
type Config struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
	ResetTTL      time.Duration
	ResetUILink   string
}

// UseCase auth workflow: registration, login, password change/reset and
// token refresh over the credential store.
type UseCase struct {
	users repository.UserRepository
	cfg   Config
}

// NewUseCase builds the auth usecase.
func NewUseCase(users repository.UserRepository, cfg Config) *UseCase {
	return &UseCase{users: users, cfg: cfg}
}

// Register creates an active user with the default role and issues a fresh
// token pair. Fails with Conflict when the email is already taken, deleted
// accounts included.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.TokenPair, error) {
	existing, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflict("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Name: entity.UserName{
			FirstName:  in.Name.FirstName,
			MiddleName: in.Name.MiddleName,
			LastName:   in.Name.LastName,
		},
		Email:    in.Email,
		Password: string(hash),
		Image:    in.Image,
		Role:     entity.RoleUser, // role in the payload is ignored
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.issuePair(user)
}

// Login verifies credentials and issues a fresh token pair. Check order is
// fixed: existence, deleted, blocked, password.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenPair, error) {
	user, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFound("User not found")
	}
	if user.IsDeleted {
		return nil, domain.NewForbidden("User has been deleted")
	}
	if user.IsBlocked {
		return nil, domain.NewForbidden("User is blocked")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, domain.NewUnauthorized("Password is incorrect")
	}
	return uc.issuePair(user)
}

// ChangePassword re-validates the caller and the old password, then persists
// the new hash together with passwordChangedAt so every token issued before
// this moment becomes invalid.
func (uc *UseCase) ChangePassword(ctx context.Context, claims *pkgjwt.Claims, in dto.ChangePasswordRequest) error {
	if claims == nil {
		return domain.NewUnauthorized("User not authenticated")
	}
	user, err := uc.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NewNotFound("User not found")
	}
	if user.IsBlocked {
		return domain.NewUnauthorized("User is blocked")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.OldPassword)); err != nil {
		return domain.NewUnauthorized("Password not matched")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return uc.users.UpdatePassword(ctx, user.ID.Hex(), string(hash))
}

// RefreshToken verifies the refresh token and issues a new access token.
// The refresh token itself is not rotated. Tokens issued before the last
// password change are rejected.
func (uc *UseCase) RefreshToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.NewUnauthorized("Refresh token is missing")
	}
	claims, err := pkgjwt.Parse(uc.cfg.RefreshSecret, token)
	if err != nil {
		return "", domain.NewUnauthorized("Invalid refresh token")
	}

	user, err := uc.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.NewNotFound("User not found")
	}
	if user.IsBlocked {
		return "", domain.NewUnauthorized("User is blocked")
	}
	if user.PasswordChangedAfter(claims.IssuedAtUnix()) {
		return "", domain.NewUnauthorized("Password changed after token issue")
	}

	return pkgjwt.Generate(uc.cfg.AccessSecret, payloadFor(user), uc.cfg.AccessTTL)
}

// ForgetPassword issues a short-lived reset token and returns the reset link
// for the frontend. Delivery of the link is out of scope here.
func (uc *UseCase) ForgetPassword(ctx context.Context, email string) (*dto.ResetLinkResponse, error) {
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFound("User not found")
	}
	if user.IsBlocked {
		return nil, domain.NewUnauthorized("User is blocked")
	}

	resetToken, err := pkgjwt.Generate(uc.cfg.AccessSecret, payloadFor(user), uc.cfg.ResetTTL)
	if err != nil {
		return nil, err
	}
	return &dto.ResetLinkResponse{
		ResetUILink: fmt.Sprintf("%s?id=%s&token=%s", uc.cfg.ResetUILink, user.ID.Hex(), resetToken),
	}, nil
}

// ResetPassword verifies the reset token, cross-checks its email against the
// claimed one and persists the new password.
func (uc *UseCase) ResetPassword(ctx context.Context, token string, in dto.ResetPasswordRequest) error {
	user, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NewNotFound("User not found")
	}
	if user.IsBlocked {
		return domain.NewUnauthorized("User is blocked")
	}

	claims, err := pkgjwt.Parse(uc.cfg.AccessSecret, token)
	if err != nil {
		return domain.NewUnauthorized("Invalid token")
	}
	if claims.Email != in.Email {
		return domain.NewUnauthorized("Invalid token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return uc.users.UpdatePassword(ctx, claims.UserID, string(hash))
}

func (uc *UseCase) issuePair(user *entity.User) (*dto.TokenPair, error) {
	payload := payloadFor(user)
	access, err := pkgjwt.Generate(uc.cfg.AccessSecret, payload, uc.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := pkgjwt.Generate(uc.cfg.RefreshSecret, payload, uc.cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func payloadFor(user *entity.User) pkgjwt.Payload {
	return pkgjwt.Payload{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   user.Role,
	}
}
