package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sazzadh/bookshop-api/internal/application/auth"
	"github.com/sazzadh/bookshop-api/internal/application/usecase"
	"github.com/sazzadh/bookshop-api/internal/infrastructure/mongodb"
	httpRouter "github.com/sazzadh/bookshop-api/internal/interfaces/http"
	"github.com/sazzadh/bookshop-api/pkg/config"
	"github.com/sazzadh/bookshop-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	client, db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnect MongoDB")
		}
	}()

	userRepo := mongodb.NewUserRepository(db, log)
	bookRepo := mongodb.NewBookRepository(db)

	authUC := auth.NewUseCase(userRepo, auth.Config{
		AccessSecret:  cfg.JWT.AccessSecret,
		AccessTTL:     time.Duration(cfg.JWT.AccessTTLMinutes) * time.Minute,
		RefreshSecret: cfg.JWT.RefreshSecret,
		RefreshTTL:    time.Duration(cfg.JWT.RefreshTTLDays) * 24 * time.Hour,
		ResetTTL:      time.Duration(cfg.Reset.TokenTTLMinutes) * time.Minute,
		ResetUILink:   cfg.Reset.UILink,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	bookUC := usecase.NewBookUseCase(bookRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.NewErrorHandler(cfg.App.IsProduction(), log),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CORSOrigins,
		AllowCredentials: true,
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI in local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bookshop API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		BookUC:       bookUC,
		Users:        userRepo,
		AccessSecret: cfg.JWT.AccessSecret,
		Production:   cfg.App.IsProduction(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
