package api

import (
	"strings"

	"github.com/BrunoReiis/nexustaskmanager/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store user claims in the Fiber context.
	UserContextKey = "user"
)

// AuthMiddleware creates a middleware that validates bearer tokens and
// stores the resulting claims under UserContextKey.
func AuthMiddleware(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, errMsg := bearerToken(c)
		if errMsg != "" {
			return unauthorized(c, errMsg)
		}

		claims, err := authAdapter.ValidateToken(c.UserContext(), token)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}

// bearerToken extracts the token from the Authorization header. Returns
// a non-empty message when the header is missing or malformed.
func bearerToken(c *fiber.Ctx) (string, string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", "Authorization header is required"
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "Invalid authorization header format. Use: Bearer <token>"
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "Token is required"
	}

	return token, ""
}
