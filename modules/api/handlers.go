package api

import (
	"errors"

	"github.com/example/price-tracker/domain/product"
	"github.com/example/price-tracker/modules/auth"
	"github.com/example/price-tracker/modules/cache"
	productmod "github.com/example/price-tracker/modules/product"
	"github.com/example/price-tracker/modules/search"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	auth     *auth.Service
	products *productmod.Service
	search   *search.Service
	cache    *cache.Cache
}

// NewHandlers creates a Handlers instance. cache may be nil.
func NewHandlers(authService *auth.Service, products *productmod.Service, searchService *search.Service, c *cache.Cache) *Handlers {
	return &Handlers{
		auth:     authService,
		products: products,
		search:   searchService,
		cache:    c,
	}
}

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
	})
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	u, err := h.auth.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrWeakPassword):
			return badRequest(c, err.Error())
		case errors.Is(err, auth.ErrUserExists):
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
				Error:   "conflict",
				Message: err.Error(),
			})
		default:
			return internalError(c, "Failed to register user")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: err.Error(),
			})
		}
		return internalError(c, "Failed to log in")
	}

	return c.JSON(token)
}

// ListProducts returns the acting user's tracked products, served through
// the cache gate.
func (h *Handlers) ListProducts(c *fiber.Ctx) error {
	claims, ok := actingUser(c)
	if !ok {
		return unauthorized(c)
	}

	result, err := h.products.List(c.UserContext(), claims.UserID)
	if err != nil {
		return internalError(c, "Failed to list products")
	}

	return c.JSON(ListProductsResponse{
		Products: result.Products,
		Cached:   result.Cached,
	})
}

// CreateProduct tracks a new product for the acting user.
func (h *Handlers) CreateProduct(c *fiber.Ctx) error {
	claims, ok := actingUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req product.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" || req.URL == "" {
		return badRequest(c, "Name and URL are required")
	}

	p, err := h.products.Create(c.UserContext(), claims.UserID, &req)
	if err != nil {
		return internalError(c, "Failed to create product")
	}

	return c.Status(fiber.StatusCreated).JSON(ProductResponse{Product: p})
}

// GetProduct returns one product and increments its view counter.
func (h *Handlers) GetProduct(c *fiber.Ctx) error {
	claims, ok := actingUser(c)
	if !ok {
		return unauthorized(c)
	}

	p, err := h.products.Get(c.UserContext(), claims.UserID, c.Params("id"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c, "Failed to get product")
	}

	return c.JSON(ProductResponse{Product: p})
}

// UpdateProduct merges a partial field set into one product.
func (h *Handlers) UpdateProduct(c *fiber.Ctx) error {
	claims, ok := actingUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req product.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	p, err := h.products.Update(c.UserContext(), claims.UserID, c.Params("id"), &req)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c, "Failed to update product")
	}

	return c.JSON(ProductResponse{Product: p})
}

// DeleteProduct removes one product.
func (h *Handlers) DeleteProduct(c *fiber.Ctx) error {
	claims, ok := actingUser(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.products.Delete(c.UserContext(), claims.UserID, c.Params("id")); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c, "Failed to delete product")
	}

	return c.JSON(MessageResponse{Message: "product deleted"})
}

// Search runs a sponsored shopping search for the q query parameter.
func (h *Handlers) Search(c *fiber.Ctx) error {
	result, err := h.search.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		switch {
		case errors.Is(err, search.ErrMissingQuery):
			return badRequest(c, "Query parameter q is required")
		case errors.Is(err, search.ErrMissingCredential):
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Error:   "configuration_error",
				Message: "Search API credential is not configured",
			})
		case errors.Is(err, search.ErrUpstream):
			return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
				Error:   "upstream_error",
				Message: err.Error(),
			})
		default:
			return internalError(c, "Search failed")
		}
	}

	return c.JSON(result)
}

// GetCacheStats returns cache hit/miss counters.
func (h *Handlers) GetCacheStats(c *fiber.Ctx) error {
	if h.cache == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "cache_unavailable",
			Message: "Cache is not connected",
		})
	}
	return c.JSON(h.cache.GetStats())
}

// ResetCacheStats zeroes the cache counters.
func (h *Handlers) ResetCacheStats(c *fiber.Ctx) error {
	if h.cache == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "cache_unavailable",
			Message: "Cache is not connected",
		})
	}
	h.cache.ResetStats()
	return c.JSON(MessageResponse{Message: "cache stats reset"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: msg,
	})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error:   "not_found",
		Message: "Product not found",
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: "User not authenticated",
	})
}

func internalError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: msg,
	})
}
