package models

import (
	"time"

	"github.com/google/uuid"
)

// Todo is the core aggregate for this bounded context.
type Todo struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID // owning user — always filter by this in queries
	Title       Title
	Description *string // optional free-form text
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTodo constructs a valid Todo aggregate with generated ID and current timestamps.
// completed defaults to the caller's choice so imports from other systems can
// create already-finished tasks; the API default is false.
func NewTodo(ownerID uuid.UUID, title Title, description *string, completed bool) (*Todo, error) {
	now := time.Now().UTC()
	return &Todo{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SetTitle replaces the title and refreshes UpdatedAt.
func (t *Todo) SetTitle(title Title) {
	t.Title = title
	t.touch()
}

// SetDescription replaces the description (nil clears it) and refreshes UpdatedAt.
func (t *Todo) SetDescription(description *string) {
	t.Description = description
	t.touch()
}

// SetCompleted sets the completion flag and refreshes UpdatedAt.
func (t *Todo) SetCompleted(completed bool) {
	t.Completed = completed
	t.touch()
}

// Toggle flips the completion flag and refreshes UpdatedAt.
func (t *Todo) Toggle() {
	t.Completed = !t.Completed
	t.touch()
}

// IsOwnedBy reports whether userID owns this todo.
func (t *Todo) IsOwnedBy(userID uuid.UUID) bool {
	return t.OwnerID == userID
}

func (t *Todo) touch() {
	t.UpdatedAt = time.Now().UTC()
}
