package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/taskdeck/services/user/domain/models"
)

// UserRepository is the persistence interface for the User aggregate.
// The domain layer owns this interface; infrastructure implements it.
type UserRepository interface {
	// Save persists a new user. Returns ErrEmailTaken if the email is in use.
	Save(ctx context.Context, user *models.User) error

	// GetByID returns the user or ErrUserNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail returns the user or ErrUserNotFound. Email is matched on the
	// normalized (lowercased) form.
	GetByEmail(ctx context.Context, email models.Email) (*models.User, error)
}
