package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GigStatus string

const (
	GigOpen     GigStatus = "Open"
	GigAssigned GigStatus = "Assigned"
	GigClosed   GigStatus = "Closed"
)

// Gig is a client-posted job. Status only ever moves Open -> Assigned or
// Open -> Closed; both are terminal for open-only operations.
type Gig struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Budget      int64  `gorm:"not null" json:"budget"`

	// Optional skill tags, e.g. ["react", "figma"]
	Tags datatypes.JSON `json:"tags,omitempty"`

	Status GigStatus `gorm:"type:varchar(20);default:'Open';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	// BidCount is computed from live bid rows, never stored.
	BidCount int64 `gorm:"->;-:migration" json:"bid_count"`
}
