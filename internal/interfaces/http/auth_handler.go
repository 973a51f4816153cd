package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sazzadh/bookshop-api/internal/application/auth"
	"github.com/sazzadh/bookshop-api/internal/application/dto"
	"github.com/sazzadh/bookshop-api/internal/domain"
)

const refreshCookieName = "refreshToken"

// AuthHandler handles the auth endpoints: register, login, logout, password
// change/reset and token refresh.
type AuthHandler struct {
	uc         *auth.UseCase
	production bool
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(uc *auth.UseCase, production bool) *AuthHandler {
	return &AuthHandler{uc: uc, production: production}
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, password"
// @Success      200   {object}  dto.AccessTokenResponse
// @Failure      409   {object}  errorEnvelope
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	pair, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return err
	}
	h.setRefreshCookie(c, pair.RefreshToken)
	return sendData(c, fiber.StatusOK, "User registered successfully",
		dto.AccessTokenResponse{AccessToken: pair.AccessToken})
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AccessTokenResponse
// @Failure      401   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	pair, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return err
	}
	h.setRefreshCookie(c, pair.RefreshToken)
	return sendData(c, fiber.StatusOK, "User logged in successfully",
		dto.AccessTokenResponse{AccessToken: pair.AccessToken})
}

// Logout clears the refresh cookie; there is no server-side session state to
// invalidate.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearRefreshCookie(c)
	return sendData(c, fiber.StatusOK, "User logged out successfully", nil)
}

// ChangePassword requires an authenticated caller and the old password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.uc.ChangePassword(c.Context(), ClaimsFromCtx(c), in); err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, "Password changed successfully", nil)
}

// RefreshToken reads the refresh token from its cookie and issues a new
// access token; the cookie is not rotated.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	access, err := h.uc.RefreshToken(c.Context(), c.Cookies(refreshCookieName))
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, "User logged in successfully",
		dto.AccessTokenResponse{AccessToken: access})
}

// ForgetPassword issues a short-lived reset token and returns the reset link.
func (h *AuthHandler) ForgetPassword(c *fiber.Ctx) error {
	var in dto.ForgetPasswordRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ForgetPassword(c.Context(), in.Email)
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, "Password reset link sent successfully", out)
}

// ResetPassword verifies the bearer reset token and sets the new password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return domain.NewUnauthorized("You are not authorized!")
	}
	var in dto.ResetPasswordRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.uc.ResetPassword(c.Context(), token, in); err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, "Password reset successfully", nil)
}

// setRefreshCookie delivers the refresh token in an HTTP-only cookie with a
// one-year max age; Secure only in production so local frontends work.
func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HTTPOnly: true,
		Secure:   h.production,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.production,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}
