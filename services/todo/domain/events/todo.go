package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicTodoCreated is the Watermill topic published when a Todo is created.
const TopicTodoCreated = "todo.created"

// TodoCreatedEvent is published after a new Todo is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicTodoCreated).
type TodoCreatedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	TodoID      uuid.UUID `json:"todo_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	OccurredAt  time.Time `json:"occurred_at"`
}
