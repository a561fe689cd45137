package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	gigsvc "gigflow/internal/services/gig"
)

type GigHandler struct {
	Gigs *gigsvc.Service
}

func NewGigHandler(gigs *gigsvc.Service) *GigHandler {
	return &GigHandler{Gigs: gigs}
}

type CreateGigReq struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Budget      int64          `json:"budget"`
	Tags        datatypes.JSON `json:"tags"`
}

func (h *GigHandler) Create(c *fiber.Ctx) error {
	uid, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateGigReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	g, err := h.Gigs.Create(c.Context(), uid, gigsvc.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Tags:        req.Tags,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    g,
	})
}

// ListOpen is the public gig feed: Open gigs, newest first, optional
// ?search= title filter, each with its bid count.
func (h *GigHandler) ListOpen(c *fiber.Ctx) error {
	gigs, err := h.Gigs.ListOpen(c.Context(), c.Query("search"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    gigs,
	})
}

func (h *GigHandler) Get(c *fiber.Ctx) error {
	gigID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid gig ID")
	}

	g, err := h.Gigs.Get(c.Context(), gigID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    g,
	})
}

func (h *GigHandler) ListMine(c *fiber.Ctx) error {
	uid, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	gigs, err := h.Gigs.ListMine(c.Context(), uid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    gigs,
	})
}

func (h *GigHandler) Close(c *fiber.Ctx) error {
	uid, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}
	gigID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid gig ID")
	}

	g, err := h.Gigs.Close(c.Context(), gigID, uid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    g,
	})
}

func (h *GigHandler) Delete(c *fiber.Ctx) error {
	uid, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}
	gigID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid gig ID")
	}

	if err := h.Gigs.Delete(c.Context(), gigID, uid); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Gig deleted successfully",
	})
}
