package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity aggregate backing the authentication gate.
// PasswordHash is a bcrypt hash; the plaintext never leaves the
// application service.
type User struct {
	ID           uuid.UUID
	Email        Email
	PasswordHash []byte
	CreatedAt    time.Time
}

// NewUser constructs a User with generated ID and current timestamp.
func NewUser(email Email, passwordHash []byte) *User {
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}
