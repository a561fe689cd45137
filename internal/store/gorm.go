package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gigflow/internal/apperr"
	"gigflow/internal/models"
)

// Gorm is the Postgres-backed Store.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) CreateUser(ctx context.Context, u *models.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("email is already registered")
		}
		return apperr.Internal(err)
	}
	return nil
}

func (s *Gorm) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return &u, nil
}

func (s *Gorm) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return &u, nil
}

func (s *Gorm) SaveUser(ctx context.Context, u *models.User) error {
	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("email is already registered")
		}
		return apperr.Internal(err)
	}
	return nil
}

// DeleteUserCascade removes the user, their gigs, the bids on those gigs and
// the bids they authored in a single transaction, so no dangling references
// survive a partial failure.
func (s *Gorm) DeleteUserCascade(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		gigIDs := tx.Model(&models.Gig{}).Select("id").Where("owner_id = ?", id)
		if err := tx.Where("gig_id IN (?)", gigIDs).Delete(&models.Bid{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", id).Delete(&models.Gig{}).Error; err != nil {
			return err
		}
		if err := tx.Where("freelancer_id = ?", id).Delete(&models.Bid{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("user not found")
		}
		return nil
	})
	return wrapTx(err)
}

func (s *Gorm) CreateGig(ctx context.Context, g *models.Gig) error {
	if err := s.db.WithContext(ctx).Create(g).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

const bidCountExpr = "(SELECT COUNT(*) FROM bids WHERE bids.gig_id = gigs.id) AS bid_count"

func (s *Gorm) GigByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	var g models.Gig
	err := s.db.WithContext(ctx).
		Select("gigs.*, "+bidCountExpr).
		Preload("Owner").
		First(&g, "gigs.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("gig not found")
		}
		return nil, apperr.Internal(err)
	}
	return &g, nil
}

func (s *Gorm) OpenGigs(ctx context.Context, search string) ([]models.Gig, error) {
	q := s.db.WithContext(ctx).
		Select("gigs.*, "+bidCountExpr).
		Preload("Owner").
		Where("gigs.status = ?", models.GigOpen)

	if search != "" {
		q = q.Where("LOWER(gigs.title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var gigs []models.Gig
	if err := q.Order("gigs.created_at DESC").Find(&gigs).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return gigs, nil
}

func (s *Gorm) GigsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Gig, error) {
	var gigs []models.Gig
	err := s.db.WithContext(ctx).
		Select("gigs.*, "+bidCountExpr).
		Where("gigs.owner_id = ?", ownerID).
		Order("gigs.created_at DESC").
		Find(&gigs).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return gigs, nil
}

func (s *Gorm) SetGigStatus(ctx context.Context, gigID uuid.UUID, from, to models.GigStatus) error {
	res := s.db.WithContext(ctx).
		Model(&models.Gig{}).
		Where("id = ? AND status = ?", gigID, from).
		Update("status", to)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.InvalidState("gig is no longer " + strings.ToLower(string(from)))
	}
	return nil
}

func (s *Gorm) DeleteGigCascade(ctx context.Context, gigID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gig_id = ?", gigID).Delete(&models.Bid{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Gig{}, "id = ?", gigID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("gig not found")
		}
		return nil
	})
	return wrapTx(err)
}

// CreateBid locks the gig row for the duration of the insert so the
// open-status check cannot race a concurrent hire, then relies on the
// composite unique index for the duplicate check.
func (s *Gorm) CreateBid(ctx context.Context, b *models.Bid) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var gig models.Gig
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&gig, "id = ?", b.GigID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.InvalidState("gig is no longer open")
			}
			return err
		}
		if gig.Status != models.GigOpen {
			return apperr.InvalidState("gig is no longer open")
		}

		var existing int64
		if err := tx.Model(&models.Bid{}).
			Where("gig_id = ? AND freelancer_id = ?", b.GigID, b.FreelancerID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperr.Conflict("you have already placed a bid on this gig")
		}

		if err := tx.Create(b).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("you have already placed a bid on this gig")
			}
			return err
		}
		return nil
	})
	return wrapTx(err)
}

func (s *Gorm) BidByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	var b models.Bid
	if err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("bid not found")
		}
		return nil, apperr.Internal(err)
	}
	return &b, nil
}

func (s *Gorm) BidForGig(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Bid, error) {
	var b models.Bid
	err := s.db.WithContext(ctx).
		First(&b, "gig_id = ? AND freelancer_id = ?", gigID, freelancerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("bid not found")
		}
		return nil, apperr.Internal(err)
	}
	return &b, nil
}

func (s *Gorm) BidsForGig(ctx context.Context, gigID uuid.UUID) ([]models.Bid, error) {
	var bids []models.Bid
	err := s.db.WithContext(ctx).
		Preload("Freelancer").
		Where("gig_id = ?", gigID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return bids, nil
}

func (s *Gorm) BidsByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.Bid, error) {
	var bids []models.Bid
	err := s.db.WithContext(ctx).
		Preload("Gig").
		Preload("Gig.Owner").
		Where("freelancer_id = ?", freelancerID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return bids, nil
}

// ApplyHire performs the hire batch as one transaction. The gig row is
// locked first and its status rechecked, which makes concurrent hire
// attempts on the same gig strictly first-committer-wins.
func (s *Gorm) ApplyHire(ctx context.Context, gigID, bidID uuid.UUID) (*models.Bid, error) {
	var hired models.Bid
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var gig models.Gig
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&gig, "id = ?", gigID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("gig not found")
			}
			return err
		}
		if gig.Status != models.GigOpen {
			return apperr.InvalidState("gig is already assigned")
		}

		if err := tx.Model(&models.Gig{}).
			Where("id = ?", gigID).
			Update("status", models.GigAssigned).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Bid{}).
			Where("id = ? AND gig_id = ?", bidID, gigID).
			Update("status", models.BidHired)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("bid not found")
		}

		// Only pending siblings are rejected; terminal bids stay untouched.
		if err := tx.Model(&models.Bid{}).
			Where("gig_id = ? AND id <> ? AND status = ?", gigID, bidID, models.BidPending).
			Update("status", models.BidRejected).Error; err != nil {
			return err
		}

		return tx.Preload("Freelancer").First(&hired, "id = ?", bidID).Error
	})
	if err != nil {
		return nil, wrapTx(err)
	}
	return &hired, nil
}

// wrapTx keeps apperr codes raised inside a transaction intact and wraps
// everything else as an infra failure.
func wrapTx(err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}
	return apperr.Internal(err)
}
