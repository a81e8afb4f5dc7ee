package api

import (
	"strings"

	"github.com/example/price-tracker/domain/user"
	"github.com/example/price-tracker/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// UserContextKey is the key under which the acting user's claims are stored
// in the Fiber context.
const UserContextKey = "user"

// AuthMiddleware validates the Bearer token and injects the acting user's
// identity into the request context. Every product and search route sits
// behind it; handlers never read a user ID from the request itself.
func AuthMiddleware(authService *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authService.ValidateToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired token",
			})
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}

// actingUser returns the claims injected by AuthMiddleware.
func actingUser(c *fiber.Ctx) (*user.Claims, bool) {
	claims, ok := c.Locals(UserContextKey).(*user.Claims)
	return claims, ok
}
