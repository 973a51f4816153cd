package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sazzadh/bookshop-api/internal/domain"
	"github.com/sazzadh/bookshop-api/internal/domain/repository"
	pkgjwt "github.com/sazzadh/bookshop-api/pkg/jwt"
)

// Locals key for the verified token claims.
const localClaims = "claims"

// Protect validates the Bearer access token, re-checks the subject against
// the credential store (blocked state, password changed after issuance) and
// enforces role membership when roles are given. Claims land in c.Locals for
// the handlers.
func Protect(accessSecret string, users repository.UserRepository, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return domain.NewUnauthorized("You are not authorized!")
		}

		claims, err := pkgjwt.Parse(accessSecret, token)
		if err != nil {
			return domain.NewUnauthorized("You are not authorized!")
		}

		user, err := users.FindByEmail(c.Context(), claims.Email)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.NewNotFound("User not found!")
		}
		if user.IsBlocked {
			return domain.NewUnauthorized("You are not authorized!")
		}
		if user.PasswordChangedAfter(claims.IssuedAtUnix()) {
			return domain.NewUnauthorized("You are not authorized!")
		}

		if len(roles) > 0 && !containsRole(roles, claims.Role) {
			return domain.NewUnauthorized("You are not authorized!")
		}

		c.Locals(localClaims, claims)
		return c.Next()
	}
}

// ClaimsFromCtx returns the verified claims stored by Protect, or nil when
// the route is unprotected.
func ClaimsFromCtx(c *fiber.Ctx) *pkgjwt.Claims {
	claims, _ := c.Locals(localClaims).(*pkgjwt.Claims)
	return claims
}

// bearerToken extracts the token from an `Authorization: Bearer <token>`
// header; empty string when absent or malformed.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
