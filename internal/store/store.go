// Package store is the entity store: durable User/Gig/Bid records plus the
// transactional batch used by the hire flow.
package store

import (
	"context"

	"github.com/google/uuid"

	"gigflow/internal/models"
)

// Store is the persistence boundary the lifecycle services work against.
// Every mutation that has a commit-time precondition (gig still open,
// one bid per freelancer, single hire winner) revalidates it inside the
// store, not just at request entry.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *models.User) error
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, u *models.User) error
	// DeleteUserCascade removes the user together with every gig they own
	// (and those gigs' bids) and every bid they authored, in one transaction.
	DeleteUserCascade(ctx context.Context, id uuid.UUID) error

	// Gigs
	CreateGig(ctx context.Context, g *models.Gig) error
	// GigByID loads a gig with its owner and computed bid count.
	GigByID(ctx context.Context, id uuid.UUID) (*models.Gig, error)
	// OpenGigs lists Open gigs newest-first, optionally filtered by a
	// case-insensitive substring match on the title, each with its bid count.
	OpenGigs(ctx context.Context, search string) ([]models.Gig, error)
	GigsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Gig, error)
	// SetGigStatus transitions the gig from one status to another as a
	// conditional update; it fails with an invalid-state error when the gig
	// is no longer in the expected status at commit time.
	SetGigStatus(ctx context.Context, gigID uuid.UUID, from, to models.GigStatus) error
	// DeleteGigCascade removes the gig and all its bids.
	DeleteGigCascade(ctx context.Context, gigID uuid.UUID) error

	// Bids
	// CreateBid inserts a pending bid. The gig-still-open and
	// one-bid-per-freelancer checks run inside the same transaction that
	// performs the insert, so a concurrent hire or duplicate submission
	// cannot slip through between check and write.
	CreateBid(ctx context.Context, b *models.Bid) error
	BidByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
	// BidForGig returns the bid a freelancer placed on a gig, or a
	// not-found error when none exists.
	BidForGig(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Bid, error)
	// BidsForGig lists all bids on a gig newest-first with freelancers loaded.
	BidsForGig(ctx context.Context, gigID uuid.UUID) ([]models.Bid, error)
	// BidsByFreelancer lists a freelancer's bids newest-first with gig
	// summaries loaded; a bid whose gig was deleted keeps a nil Gig.
	BidsByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.Bid, error)

	// ApplyHire atomically marks the gig Assigned, the winning bid Hired,
	// and every other pending bid on the gig Rejected. The gig's Open
	// status is rechecked under lock; the loser of a concurrent hire gets
	// an invalid-state error. Returns the hired bid with its freelancer.
	ApplyHire(ctx context.Context, gigID, bidID uuid.UUID) (*models.Bid, error)
}
