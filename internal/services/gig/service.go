// Package gig enforces the gig lifecycle: Open -> Assigned, Open -> Closed,
// ownership checks, and the open-gig listing.
package gig

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

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
	Title       string
	Description string
	Budget      int64
	Tags        datatypes.JSON
}

// Create posts a new gig with status Open.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*models.Gig, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperr.Validation("description is required")
	}
	if in.Budget <= 0 {
		return nil, apperr.Validation("budget must be positive")
	}

	g := &models.Gig{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Budget:      in.Budget,
		Tags:        in.Tags,
		Status:      models.GigOpen,
	}
	if err := s.Store.CreateGig(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Get returns a gig with its owner and bid count.
func (s *Service) Get(ctx context.Context, gigID uuid.UUID) (*models.Gig, error) {
	return s.Store.GigByID(ctx, gigID)
}

// ListOpen returns every Open gig newest-first, optionally filtered by a
// case-insensitive substring match on the title. Each result carries its
// live bid count.
func (s *Service) ListOpen(ctx context.Context, search string) ([]models.Gig, error) {
	return s.Store.OpenGigs(ctx, strings.TrimSpace(search))
}

// ListMine returns all gigs posted by the requester, any status.
func (s *Service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]models.Gig, error) {
	return s.Store.GigsByOwner(ctx, ownerID)
}

// Close transitions an Open gig to Closed. Only the owner may close, and
// the Open precondition is re-applied as a conditional update so a close
// racing a hire cannot clobber the Assigned status.
func (s *Service) Close(ctx context.Context, gigID, requesterID uuid.UUID) (*models.Gig, error) {
	g, err := s.Store.GigByID(ctx, gigID)
	if err != nil {
		return nil, err
	}
	if g.OwnerID != requesterID {
		return nil, apperr.Unauthorized("not authorized to update this gig")
	}
	if g.Status != models.GigOpen {
		return nil, apperr.InvalidState("gig is no longer open")
	}
	if err := s.Store.SetGigStatus(ctx, gigID, models.GigOpen, models.GigClosed); err != nil {
		return nil, err
	}
	g.Status = models.GigClosed
	return g, nil
}

// Delete removes a gig and all its bids. An Assigned gig may never be
// deleted; it is the hired freelancer's record.
func (s *Service) Delete(ctx context.Context, gigID, requesterID uuid.UUID) error {
	g, err := s.Store.GigByID(ctx, gigID)
	if err != nil {
		return err
	}
	if g.OwnerID != requesterID {
		return apperr.Unauthorized("not authorized to delete this gig")
	}
	if g.Status == models.GigAssigned {
		return apperr.InvalidState("cannot delete an assigned gig")
	}
	return s.Store.DeleteGigCascade(ctx, gigID)
}
