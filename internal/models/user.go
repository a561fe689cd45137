package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
)

// User is an account on the platform. The role is fixed at registration;
// there is no re-tagging between client and freelancer.
type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;index" json:"role"`

	// Email verification. OTP and OTPExpires are only set while unverified.
	IsVerified bool       `gorm:"default:false" json:"is_verified"`
	OTP        string     `gorm:"size:6" json:"-"`
	OTPExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OTPValid reports whether code matches the pending OTP and it has not expired.
func (u *User) OTPValid(code string, now time.Time) bool {
	if u.IsVerified || u.OTP == "" || u.OTPExpires == nil {
		return false
	}
	return u.OTP == code && now.Before(*u.OTPExpires)
}
