package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sazzadh/bookshop-api/internal/application/dto"
	"github.com/sazzadh/bookshop-api/internal/application/usecase"
)

// BookHandler handles the catalog endpoints.
type BookHandler struct {
	uc *usecase.BookUseCase
}

// NewBookHandler builds the book handler.
func NewBookHandler(uc *usecase.BookUseCase) *BookHandler {
	return &BookHandler{uc: uc}
}

// List godoc
// @Summary      List books
// @Description  Supports searchTerm, sort, page, limit, fields, discount,
// @Description  genre, minPrice, maxPrice, featured and field[op] filters.
// @Tags         books
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	books, meta, err := h.uc.List(c.Context(), c.Queries())
	if err != nil {
		return err
	}
	return sendList(c, fiber.StatusOK, "Books retrieved successfully", books, meta)
}

// GetByID fetches a single book.
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	book, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, "Book retrieved successfully", book)
}

// Create adds a book to the catalog (admin only).
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	book, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusCreated, "Book created successfully", book)
}
