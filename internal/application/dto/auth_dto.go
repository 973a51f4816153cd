package dto

// NameInput name parts for registration and profile updates.
type NameInput struct {
	FirstName  string `json:"firstName" validate:"required,min=3,max=30"`
	MiddleName string `json:"middleName" validate:"omitempty,max=30"`
	LastName   string `json:"lastName" validate:"required,max=30"`
}

// RegisterRequest body for POST /auth/register.
type RegisterRequest struct {
	Name     NameInput `json:"name" validate:"required"`
	Email    string    `json:"email" validate:"required,email"`
	Password string    `json:"password" validate:"required,min=6,max=32"`
	Image    string    `json:"image" validate:"omitempty"`
	Role     string    `json:"role" validate:"omitempty,oneof=user admin supervisor"`
}

// LoginRequest body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=32"`
}

// ChangePasswordRequest body for POST /auth/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required,min=6,max=32"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=32"`
}

// ForgetPasswordRequest body for POST /auth/forget-password.
type ForgetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest body for POST /auth/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=32"`
}

// TokenPair access/refresh token pair issued on register and login. The
// refresh token travels in an HTTP-only cookie, never in the body.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AccessTokenResponse body payload carrying only the access token.
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// ResetLinkResponse body payload for forget-password.
type ResetLinkResponse struct {
	ResetUILink string `json:"resetUILink"`
}
