package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sazzadh/bookshop-api/internal/application/auth"
	"github.com/sazzadh/bookshop-api/internal/application/usecase"
	"github.com/sazzadh/bookshop-api/internal/domain/entity"
	"github.com/sazzadh/bookshop-api/internal/domain/repository"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	UserUC       *usecase.UserUseCase
	BookUC       *usecase.BookUseCase
	Users        repository.UserRepository
	AccessSecret string
	Production   bool
}

// Router registers the API routes. Unknown routes fall through to the
// standardized not-found response.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	anyRole := Protect(deps.AccessSecret, deps.Users,
		entity.RoleUser, entity.RoleAdmin, entity.RoleSupervisor)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Production)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/change-password", anyRole, authHandler.ChangePassword)
	authGroup.Post("/refresh-token", authHandler.RefreshToken)
	authGroup.Post("/forget-password", authHandler.ForgetPassword)
	// reset-password carries the reset token itself, no access token needed
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Users (protected)
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/my-profile", anyRole, userHandler.GetMyProfile)
	users.Patch("/my-profile", anyRole, userHandler.UpdateMyProfile)

	// Books (listing public, creation admin only)
	books := api.Group("/books")
	bookHandler := NewBookHandler(deps.BookUC)
	books.Get("/", bookHandler.List)
	books.Get("/:id", bookHandler.GetByID)
	books.Post("/", Protect(deps.AccessSecret, deps.Users, entity.RoleAdmin), bookHandler.Create)

	app.Use(NotFoundHandler)
}
