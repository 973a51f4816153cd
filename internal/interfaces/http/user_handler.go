package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sazzadh/bookshop-api/internal/application/dto"
	"github.com/sazzadh/bookshop-api/internal/application/usecase"
)

// UserHandler handles the authenticated profile endpoints.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler builds the user handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// GetMyProfile godoc
// @Summary      Retrieve the caller's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.User
// @Failure      401  {object}  errorEnvelope
// @Router       /api/v1/users/my-profile [get]
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	user, err := h.uc.GetMyProfile(c.Context(), ClaimsFromCtx(c))
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, "Profile retrieved successfully", user)
}

// UpdateMyProfile godoc
// @Summary      Partially update the caller's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateProfileRequest  true  "fields to update"
// @Success      200   {object}  entity.User
// @Failure      401   {object}  errorEnvelope
// @Router       /api/v1/users/my-profile [patch]
func (h *UserHandler) UpdateMyProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	user, err := h.uc.UpdateMyProfile(c.Context(), ClaimsFromCtx(c), in)
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, "Profile updated successfully", user)
}
