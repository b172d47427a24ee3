// Package entity defines the domain entities for the users feature.
package entity

import "time"

// User represents a registered user in the system.
// It contains profile fields and metadata for user management.
type User struct {
	// ID is the unique identifier for the user, assigned by storage on creation.
	ID uint `gorm:"primaryKey"`

	// FirstName is the user's given name.
	FirstName string `gorm:"size:100;not null"`

	// LastName is the user's family name.
	LastName string `gorm:"size:100;not null"`

	// Email is the user's email address.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the encrypted password for the user.
	// This should never store plaintext passwords and must never be
	// serialized into API responses.
	Password string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
