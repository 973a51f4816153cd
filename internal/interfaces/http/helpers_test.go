package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/sazzadh/bookshop-api/internal/application/auth"
	"github.com/sazzadh/bookshop-api/internal/application/usecase"
	"github.com/sazzadh/bookshop-api/internal/domain"
	"github.com/sazzadh/bookshop-api/internal/domain/entity"
	"github.com/sazzadh/bookshop-api/internal/domain/repository"
	apphttp "github.com/sazzadh/bookshop-api/internal/interfaces/http"
	"github.com/sazzadh/bookshop-api/pkg/logger"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

// fakeUserRepo in-memory UserRepository for handler and middleware tests.
type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return domain.NewConflict("User already exists")
	}
	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id string, hash string) error {
	for _, u := range f.byEmail {
		if u.ID.Hex() == id {
			now := time.Now()
			u.Password = hash
			u.PasswordChangedAt = &now
			return nil
		}
	}
	return domain.NewNotFound("User not found")
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id string, update *entity.ProfileUpdate) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID.Hex() == id {
			if update.Name != nil {
				u.Name = *update.Name
			}
			if update.Email != nil {
				u.Email = *update.Email
			}
			if update.Image != nil {
				u.Image = *update.Image
			}
			if update.Role != nil {
				u.Role = *update.Role
			}
			return u, nil
		}
	}
	return nil, domain.NewNotFound("User not found")
}

// addUser seeds the fake repo with a bcrypt-hashed password and returns the
// stored record.
func (f *fakeUserRepo) addUser(t *testing.T, email, password, role string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{
		ID:       primitive.NewObjectID(),
		Name:     entity.UserName{FirstName: "Test", LastName: "User"},
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	f.byEmail[email] = user
	return user
}

// fakeBookRepo minimal BookRepository; List echoes an empty page.
type fakeBookRepo struct {
	books []*entity.Book
}

func (f *fakeBookRepo) Create(_ context.Context, book *entity.Book) error {
	book.ID = primitive.NewObjectID()
	f.books = append(f.books, book)
	return nil
}

func (f *fakeBookRepo) FindByID(_ context.Context, id string) (*entity.Book, error) {
	for _, b := range f.books {
		if b.ID.Hex() == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookRepo) List(_ context.Context, _ map[string]string) ([]*entity.Book, *repository.ListMeta, error) {
	total := int64(len(f.books))
	return f.books, &repository.ListMeta{Page: 1, Limit: 10, Total: total, TotalPage: (total + 9) / 10}, nil
}

// buildTestApp wires a full fiber app over the fakes, mirroring main.go.
func buildTestApp(users *fakeUserRepo) *fiber.App {
	log := logger.New(logger.Config{Env: "test", Level: "error"})

	authUC := auth.NewUseCase(users, auth.Config{
		AccessSecret:  testAccessSecret,
		AccessTTL:     15 * time.Minute,
		RefreshSecret: testRefreshSecret,
		RefreshTTL:    365 * 24 * time.Hour,
		ResetTTL:      10 * time.Minute,
		ResetUILink:   "http://localhost:5173/reset-password",
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: apphttp.NewErrorHandler(true, log),
	})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		UserUC:       usecase.NewUserUseCase(users),
		BookUC:       usecase.NewBookUseCase(&fakeBookRepo{}),
		Users:        users,
		AccessSecret: testAccessSecret,
		Production:   true,
	})
	return app
}

// doJSON posts a JSON body and returns the response.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, header map[string]string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeEnvelope decodes the uniform response envelope.
func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// refreshCookie extracts the refreshToken cookie from a response, nil when
// absent.
func refreshCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "refreshToken" {
			return c
		}
	}
	return nil
}
