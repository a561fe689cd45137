package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gigflow/internal/apperr"
)

// fail maps a service error onto the response envelope. The five
// user-facing kinds keep their message; anything else is logged and hidden
// behind a generic 500.
func fail(c *fiber.Ctx, err error) error {
	code := apperr.CodeOf(err)
	if code == apperr.CodeInternal {
		logrus.WithError(err).WithField("path", c.Path()).Error("request failed")
		return c.Status(code.HTTPStatus()).JSON(fiber.Map{
			"success": false,
			"message": "internal server error",
		})
	}

	var ae *apperr.Error
	message := "request failed"
	if errors.As(err, &ae) {
		message = ae.Message
	}
	return c.Status(code.HTTPStatus()).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// requesterID reads the authenticated user id set by the auth middleware.
func requesterID(c *fiber.Ctx) (uuid.UUID, bool) {
	raw, _ := c.Locals("userId").(string)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "Unauthorized",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
