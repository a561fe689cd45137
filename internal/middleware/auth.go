package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"gigflow/internal/utils"
)

// Auth reads the session JWT from the cookie, validates it, and stores the
// requester's id and role in locals for downstream handlers.
func Auth(cookieName, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(cookieName)
		if tokenStr == "" {
			return fiber.ErrUnauthorized
		}

		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		uid := strings.TrimSpace(claims.UserID)
		if uid == "" {
			return fiber.ErrUnauthorized
		}

		c.Locals("userId", uid)
		c.Locals("role", strings.ToLower(strings.TrimSpace(claims.Role)))
		return c.Next()
	}
}
