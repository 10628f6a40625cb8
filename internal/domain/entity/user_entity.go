package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// PasswordHash is a bcrypt digest and must never leave the
// repository/hasher boundary; public projections strip it.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string // empty when the user registered without one
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
