package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gigflow/internal/store"
	"gigflow/internal/utils"
)

type UserHandler struct {
	Store      store.Store
	CookieName string
}

func NewUserHandler(st store.Store, cookieName string) *UserHandler {
	return &UserHandler{Store: st, CookieName: cookieName}
}

type UpdateProfileReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfile changes the requester's name, email or password. Role is
// immutable for the lifetime of the account.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	uid, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpdateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	u, err := h.Store.UserByID(c.Context(), uid)
	if err != nil {
		return fail(c, err)
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		u.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" {
		if !strings.Contains(email, "@") {
			return badRequest(c, "Email format is invalid")
		}
		u.Email = email
	}
	if password := strings.TrimSpace(req.Password); password != "" {
		if len(password) < 6 {
			return badRequest(c, "Password must be at least 6 characters")
		}
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return fail(c, err)
		}
		u.Password = hashed
	}

	if err := h.Store.SaveUser(c.Context(), u); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    userPayload(u),
	})
}

// Delete removes the requester's own account and every gig and bid that
// references it, so no orphaned records survive.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	uid, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}
	if targetID != uid {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Not authorized to delete this account",
		})
	}

	if err := h.Store.DeleteUserCascade(c.Context(), targetID); err != nil {
		return fail(c, err)
	}

	c.Cookie(&fiber.Cookie{Name: h.CookieName, Value: "", Path: "/", HTTPOnly: true, MaxAge: -1})
	return c.JSON(fiber.Map{"success": true, "message": "User removed"})
}
