package dto

// CreateBookRequest body for POST /books (admin only).
type CreateBookRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Author      string  `json:"author" validate:"required,max=100"`
	Genre       string  `json:"genre" validate:"required,max=50"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Discount    float64 `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Featured    bool    `json:"featured"`
	InStock     bool    `json:"inStock"`
}
