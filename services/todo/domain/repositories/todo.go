package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/taskdeck/services/todo/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// TodoRepository is the persistence interface for the Todo aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// GetByID is deliberately not scoped by owner: the application service
// compares OwnerID itself so it can distinguish "not found" from
// "exists but belongs to someone else".
type TodoRepository interface {
	Save(ctx context.Context, todo *models.Todo) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Todo, error)

	// FindByOwnerID retrieves a paginated list of todos for the given user,
	// newest first. Returns the todos slice and the total count (ignoring
	// pagination).
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, opts QueryOpts) ([]*models.Todo, int, error)

	// Update persists changes to an existing Todo.
	Update(ctx context.Context, todo *models.Todo) error

	// Delete removes a todo by ID. Returns ErrTodoNotFound if no row matched.
	Delete(ctx context.Context, id uuid.UUID) error

	// PurgeCompleted hard-deletes completed todos last updated before cutoff,
	// across all users. Returns the number of rows removed. Used by the
	// retention workflow.
	PurgeCompleted(ctx context.Context, cutoff time.Time) (int64, error)
}
