package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireRoles rejects requests whose authenticated role is not in the
// allowed set. Must run after Auth.
func RequireRoles(allowed ...string) fiber.Handler {
	allowedSet := map[string]bool{}
	for _, r := range allowed {
		allowedSet[strings.ToLower(r)] = true
	}

	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role == "" {
			return fiber.ErrUnauthorized
		}
		if !allowedSet[role] {
			return fiber.NewError(fiber.StatusForbidden, "forbidden: insufficient role")
		}
		return c.Next()
	}
}
