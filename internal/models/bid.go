package models

import (
	"time"

	"github.com/google/uuid"
)

type BidStatus string

const (
	BidPending  BidStatus = "Pending"
	BidHired    BidStatus = "Hired"
	BidRejected BidStatus = "Rejected"
)

// Bid is a freelancer's priced proposal against one gig. At most one bid
// exists per (gig, freelancer) pair, enforced by the composite unique index.
type Bid struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	GigID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bids_gig_freelancer" json:"gig_id"`
	FreelancerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bids_gig_freelancer;index" json:"freelancer_id"`

	Message string `gorm:"not null" json:"message"`
	Price   int64  `gorm:"not null" json:"price"`

	Status BidStatus `gorm:"type:varchar(20);default:'Pending';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations. Gig is nullable in responses: a bid survives its gig only
	// transiently in listings after the gig owner deleted the gig mid-request.
	Gig        *Gig  `gorm:"foreignKey:GigID;constraint:OnDelete:CASCADE" json:"gig,omitempty"`
	Freelancer *User `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
}

// Terminal reports whether the bid has reached a final status.
func (b *Bid) Terminal() bool {
	return b.Status == BidHired || b.Status == BidRejected
}
