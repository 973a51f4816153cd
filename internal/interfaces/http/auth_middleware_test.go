package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sazzadh/bookshop-api/internal/domain/entity"
	apphttp "github.com/sazzadh/bookshop-api/internal/interfaces/http"
	pkgjwt "github.com/sazzadh/bookshop-api/pkg/jwt"
	"github.com/sazzadh/bookshop-api/pkg/logger"
)

// protectedApp mounts Protect in front of a handler that echoes the claims.
func protectedApp(users *fakeUserRepo, roles ...string) *fiber.App {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	app := fiber.New(fiber.Config{
		ErrorHandler: apphttp.NewErrorHandler(true, log),
	})
	app.Get("/secure", apphttp.Protect(testAccessSecret, users, roles...), func(c *fiber.Ctx) error {
		claims := apphttp.ClaimsFromCtx(c)
		if claims == nil {
			return fiber.NewError(fiber.StatusInternalServerError, "claims missing")
		}
		return c.JSON(fiber.Map{"email": claims.Email, "role": claims.Role})
	})
	return app
}

func accessTokenFor(t *testing.T, user *entity.User, ttl time.Duration) string {
	t.Helper()
	token, err := pkgjwt.Generate(testAccessSecret, pkgjwt.Payload{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   user.Role,
	}, ttl)
	require.NoError(t, err)
	return token
}

func TestProtect_MissingHeader(t *testing.T) {
	app := protectedApp(newFakeUserRepo(), entity.RoleUser)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/secure", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "You are not authorized!", body["message"])
}

func TestProtect_MalformedToken(t *testing.T) {
	app := protectedApp(newFakeUserRepo(), entity.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtect_ValidToken(t *testing.T) {
	users := newFakeUserRepo()
	user := users.addUser(t, "reader@example.com", "secret12", entity.RoleUser)
	app := protectedApp(users, entity.RoleUser, entity.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, user, time.Minute))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	assert.Equal(t, "reader@example.com", body["email"])
	assert.Equal(t, entity.RoleUser, body["role"])
}

func TestProtect_RoleMismatch(t *testing.T) {
	users := newFakeUserRepo()
	user := users.addUser(t, "reader@example.com", "secret12", entity.RoleUser)
	app := protectedApp(users, entity.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, user, time.Minute))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtect_UnknownUser(t *testing.T) {
	users := newFakeUserRepo()
	user := users.addUser(t, "reader@example.com", "secret12", entity.RoleUser)
	token := accessTokenFor(t, user, time.Minute)
	delete(users.byEmail, user.Email)

	app := protectedApp(users, entity.RoleUser)
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	assert.Equal(t, "User not found!", body["message"])
}

func TestProtect_BlockedUser(t *testing.T) {
	users := newFakeUserRepo()
	user := users.addUser(t, "reader@example.com", "secret12", entity.RoleUser)
	user.IsBlocked = true

	app := protectedApp(users, entity.RoleUser)
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, user, time.Minute))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtect_PasswordChangedAfterIssue(t *testing.T) {
	users := newFakeUserRepo()
	user := users.addUser(t, "reader@example.com", "secret12", entity.RoleUser)
	token := accessTokenFor(t, user, time.Minute)

	changed := time.Now().Add(2 * time.Second)
	user.PasswordChangedAt = &changed

	app := protectedApp(users, entity.RoleUser)
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtect_ExpiredToken(t *testing.T) {
	users := newFakeUserRepo()
	user := users.addUser(t, "reader@example.com", "secret12", entity.RoleUser)

	app := protectedApp(users, entity.RoleUser)
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, user, -time.Minute))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
