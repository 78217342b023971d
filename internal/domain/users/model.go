package users

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string
	IsVerified   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile holds the attendee details collected on the join form. One per
// user; signup records reference both the user and the profile.
type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_profiles_user_id"`
	User        User      `gorm:"constraint:OnDelete:CASCADE"`
	FullName    string
	Institution string
	Whatsapp    string
	Gender      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
