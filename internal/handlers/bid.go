package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	bidsvc "gigflow/internal/services/bid"
	"gigflow/internal/services/hiring"
)

type BidHandler struct {
	Bids   *bidsvc.Service
	Hiring *hiring.Service
}

func NewBidHandler(bids *bidsvc.Service, hire *hiring.Service) *BidHandler {
	return &BidHandler{Bids: bids, Hiring: hire}
}

type CreateBidReq struct {
	GigID   string `json:"gig_id"`
	Message string `json:"message"`
	Price   int64  `json:"price"`
}

func (h *BidHandler) Create(c *fiber.Ctx) error {
	uid, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateBidReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	gigID, err := uuid.Parse(req.GigID)
	if err != nil {
		return badRequest(c, "Invalid gig ID")
	}

	b, err := h.Bids.Create(c.Context(), uid, bidsvc.CreateInput{
		GigID:   gigID,
		Message: req.Message,
		Price:   req.Price,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    b,
	})
}

// ListForGig returns the bids on a gig, owner only.
func (h *BidHandler) ListForGig(c *fiber.Ctx) error {
	uid, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}
	gigID, err := uuid.Parse(c.Params("gigId"))
	if err != nil {
		return badRequest(c, "Invalid gig ID")
	}

	bids, err := h.Bids.ListForGig(c.Context(), gigID, uid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    bids,
	})
}

// CheckMine lets a freelancer see their own standing on a gig. Responds
// with null data when they have not bid.
func (h *BidHandler) CheckMine(c *fiber.Ctx) error {
	uid, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}
	gigID, err := uuid.Parse(c.Params("gigId"))
	if err != nil {
		return badRequest(c, "Invalid gig ID")
	}

	b, err := h.Bids.FindMine(c.Context(), gigID, uid)
	if err != nil {
		return fail(c, err)
	}
	if b == nil {
		return c.JSON(fiber.Map{"success": true, "data": nil})
	}
	return c.JSON(fiber.Map{"success": true, "data": b})
}

func (h *BidHandler) ListMine(c *fiber.Ctx) error {
	uid, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	bids, err := h.Bids.ListMine(c.Context(), uid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    bids,
	})
}

// Hire selects the winning bid. Gig-not-open and not-authorized come back
// as distinguishable 400 vs 403 failures.
func (h *BidHandler) Hire(c *fiber.Ctx) error {
	uid, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}
	bidID, err := uuid.Parse(c.Params("bidId"))
	if err != nil {
		return badRequest(c, "Invalid bid ID")
	}

	hired, err := h.Hiring.Hire(c.Context(), bidID, uid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Freelancer hired successfully",
		"data":    hired,
	})
}
