package http

import (
	"errors"
	"runtime/debug"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sazzadh/bookshop-api/internal/domain"
	"github.com/sazzadh/bookshop-api/pkg/logger"
)

// NewErrorHandler returns the single top-level fiber error handler. Every
// error kind is mapped to the uniform error envelope: tagged AppErrors carry
// their own status and sources, validator errors become 400 with field-level
// sources, store duplicate-key errors become 409, everything else defaults
// to 500 with a generic message.
func NewErrorHandler(production bool, log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Something went wrong!"
		var sources []domain.ErrorSource

		switch {
		case isAppError(err):
			appErr, _ := domain.AsAppError(err)
			status = appErr.StatusCode
			message = appErr.Message
			sources = appErr.Sources
		case isValidationError(err):
			var verrs validator.ValidationErrors
			errors.As(err, &verrs)
			status = fiber.StatusBadRequest
			message = "Validation Error!"
			sources = sourcesFromValidator(verrs)
		case mongo.IsDuplicateKeyError(err):
			status = fiber.StatusConflict
			message = "Duplicate Field Value"
		case isFiberError(err):
			var fiberErr *fiber.Error
			errors.As(err, &fiberErr)
			status = fiberErr.Code
			message = fiberErr.Message
		}

		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		}

		if len(sources) == 0 {
			sources = []domain.ErrorSource{{Path: "", Message: message}}
		}

		body := errorEnvelope{Success: false, Message: message, ErrorSources: sources}
		if !production {
			body.Stack = string(debug.Stack())
		}
		return c.Status(status).JSON(body)
	}
}

func isAppError(err error) bool {
	_, ok := domain.AsAppError(err)
	return ok
}

func isValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

func isFiberError(err error) bool {
	var fiberErr *fiber.Error
	return errors.As(err, &fiberErr)
}

// NotFoundHandler standardized response for unknown routes, registered after
// every other route.
func NotFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(errorEnvelope{
		Success: false,
		Message: "API Not Found",
		ErrorSources: []domain.ErrorSource{
			{Path: c.Path(), Message: "The requested API does not exist"},
		},
	})
}
