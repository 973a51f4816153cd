package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sazzadh/bookshop-api/internal/domain"
	"github.com/sazzadh/bookshop-api/internal/domain/repository"
)

// envelope uniform success response body.
type envelope struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    interface{}          `json:"data,omitempty"`
	Meta    *repository.ListMeta `json:"meta,omitempty"`
}

// errorEnvelope uniform error response body. Stack is only populated outside
// production.
type errorEnvelope struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	ErrorSources []domain.ErrorSource `json:"errorSources"`
	Stack        string               `json:"stack,omitempty"`
}

// sendData writes the success envelope with a data payload.
func sendData(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(envelope{Success: true, Message: message, Data: data})
}

// sendList writes the success envelope with a data payload and page metadata.
func sendList(c *fiber.Ctx, status int, message string, data interface{}, meta *repository.ListMeta) error {
	return c.Status(status).JSON(envelope{Success: true, Message: message, Data: data, Meta: meta})
}
