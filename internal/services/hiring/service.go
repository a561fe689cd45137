// Package hiring implements the hire transaction: select one bid, lock the
// gig, reject the competition, then tell the winner.
package hiring

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gigflow/internal/apperr"
	"gigflow/internal/models"
	"gigflow/internal/store"
)

// Notifier receives the hired event after the transaction commits.
// Implementations must be safe to call from a background goroutine and may
// fail silently; delivery is best-effort.
type Notifier interface {
	NotifyHired(gig *models.Gig, bid *models.Bid)
}

// Notifiers fans a single event out to several notifiers.
type Notifiers []Notifier

func (ns Notifiers) NotifyHired(gig *models.Gig, bid *models.Bid) {
	for _, n := range ns {
		n.NotifyHired(gig, bid)
	}
}

type Service struct {
	Store    store.Store
	Notifier Notifier
}

func NewService(st store.Store, n Notifier) *Service {
	return &Service{Store: st, Notifier: n}
}

// Hire selects a bid for its gig: the gig becomes Assigned, the bid Hired,
// and every other pending bid on the gig Rejected, in one atomic batch.
// The status guard is checked twice: here for a precise error, and again
// inside the store under the gig lock, which is what makes two concurrent
// hire calls resolve to exactly one winner.
//
// Notification runs after commit on a separate goroutine; its failure never
// surfaces as a hire failure.
func (s *Service) Hire(ctx context.Context, bidID, requesterID uuid.UUID) (*models.Bid, error) {
	b, err := s.Store.BidByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	g, err := s.Store.GigByID(ctx, b.GigID)
	if err != nil {
		return nil, err
	}
	if g.OwnerID != requesterID {
		return nil, apperr.Unauthorized("not authorized to hire for this gig")
	}
	if g.Status != models.GigOpen {
		return nil, apperr.InvalidState("gig is already assigned")
	}

	hired, err := s.Store.ApplyHire(ctx, g.ID, bidID)
	if err != nil {
		return nil, err
	}
	g.Status = models.GigAssigned

	if s.Notifier != nil {
		gigCopy := *g
		bidCopy := *hired
		go func() {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("gig_id", gigCopy.ID).Errorf("hire notification panicked: %v", r)
				}
			}()
			s.Notifier.NotifyHired(&gigCopy, &bidCopy)
		}()
	}

	return hired, nil
}
