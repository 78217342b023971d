package users

import "time"

// VerificationToken backs the email verification link sent at signup.
type VerificationToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Token     string `gorm:"uniqueIndex"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
