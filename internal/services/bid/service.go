// Package bid enforces the bid lifecycle: one pending bid per freelancer
// per open gig, no self-bids, owner-only listings.
package bid

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"gigflow/internal/apperr"
	"gigflow/internal/models"
	"gigflow/internal/store"
)

type Service struct {
	Store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{Store: st}
}

type CreateInput struct {
	GigID   uuid.UUID
	Message string
	Price   int64
}

// Create places a pending bid on an open gig. The open-status and
// uniqueness checks run again inside the store transaction; the checks
// here exist to give the caller a precise error without burning a write.
func (s *Service) Create(ctx context.Context, freelancerID uuid.UUID, in CreateInput) (*models.Bid, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, apperr.Validation("message is required")
	}
	if in.Price <= 0 {
		return nil, apperr.Validation("price must be positive")
	}

	g, err := s.Store.GigByID(ctx, in.GigID)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			return nil, apperr.InvalidState("gig is no longer open")
		}
		return nil, err
	}
	if g.OwnerID == freelancerID {
		return nil, apperr.Unauthorized("you cannot bid on your own gig")
	}
	if g.Status != models.GigOpen {
		return nil, apperr.InvalidState("gig is no longer open")
	}

	b := &models.Bid{
		GigID:        in.GigID,
		FreelancerID: freelancerID,
		Message:      strings.TrimSpace(in.Message),
		Price:        in.Price,
		Status:       models.BidPending,
	}
	if err := s.Store.CreateBid(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListForGig returns all bids on a gig newest-first with freelancer
// name/email attached. Only the gig owner may call it.
func (s *Service) ListForGig(ctx context.Context, gigID, requesterID uuid.UUID) ([]models.Bid, error) {
	g, err := s.Store.GigByID(ctx, gigID)
	if err != nil {
		return nil, err
	}
	if g.OwnerID != requesterID {
		return nil, apperr.Unauthorized("not authorized to view bids for this gig")
	}
	return s.Store.BidsForGig(ctx, gigID)
}

// FindMine returns the requester's own bid on a gig, or nil when they have
// not bid. It never exposes other freelancers' bids.
func (s *Service) FindMine(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Bid, error) {
	b, err := s.Store.BidForGig(ctx, gigID, freelancerID)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// ListMine returns every bid the freelancer has placed, newest-first, each
// joined with its gig summary. A bid whose gig has since been deleted is
// returned with a nil gig rather than dropped or failed.
func (s *Service) ListMine(ctx context.Context, freelancerID uuid.UUID) ([]models.Bid, error) {
	return s.Store.BidsByFreelancer(ctx, freelancerID)
}
