package models

import "time"

// TokenBlacklist stores revoked access tokens until their own expiry.
// Rows past ExpiresAt no longer block anything (the token itself is expired)
// and are pruned lazily on the next revocation.
type TokenBlacklist struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	Token     string    `gorm:"size:1024;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"index;not null"`
}
