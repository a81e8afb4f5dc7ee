package api

import (
	"time"

	"github.com/example/price-tracker/domain/product"
)

// ErrorResponse is the JSON envelope for every error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of a registered user.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ListProductsResponse is the body of GET /products. Cached is present only
// when the listing was served from the cache.
type ListProductsResponse struct {
	Products []product.Product `json:"products"`
	Cached   bool              `json:"cached,omitempty"`
}

// ProductResponse wraps a single product.
type ProductResponse struct {
	Product *product.Product `json:"product"`
}

// MessageResponse is a plain acknowledgment.
type MessageResponse struct {
	Message string `json:"message"`
}
