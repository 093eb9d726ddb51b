package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"productos/internal/errs"
	"productos/internal/services"
)

// Keys under which AuthRequired stores token claims in fiber.Ctx.Locals.
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return errs.NewUnauthorizedError("se requiere la cabecera Authorization")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return errs.NewUnauthorizedError("la cabecera Authorization debe tener el formato 'Bearer <token>'")
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			return err
		}

		if userID, ok := claims["user_id"].(string); ok {
			c.Locals(UserIDKey, userID)
		}
		if username, ok := claims["username"].(string); ok {
			c.Locals(UsernameKey, username)
		}
		return c.Next()
	}
}
