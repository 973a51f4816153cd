package dto

// UpdateProfileRequest body for PATCH /users/my-profile; nil fields are left
// untouched. A name update replaces the whole name subdocument, so first and
// last name are required whenever name is present.
type UpdateProfileRequest struct {
	Name  *NameInput `json:"name" validate:"omitempty"`
	Email *string    `json:"email" validate:"omitempty,email"`
	Image *string    `json:"image" validate:"omitempty"`
	Role  *string    `json:"role" validate:"omitempty,oneof=user admin supervisor"`
}
