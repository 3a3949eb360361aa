package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/taskdeck/pkg/httpx"
	"github.com/ghuser/taskdeck/services/todo/domain/models"
)

// TodoResponse is the wire representation of a Todo.
type TodoResponse struct {
	ID          uuid.UUID `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	OwnerID     uuid.UUID `json:"owner_id"    example:"550e8400-e29b-41d4-a716-446655440000"`
	Title       string    `json:"title"       example:"Buy milk"`
	Description *string   `json:"description" example:"2 liters, whole"`
	Completed   bool      `json:"completed"   example:"false"`
	CreatedAt   time.Time `json:"created_at"  example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time `json:"updated_at"  example:"2024-01-15T10:30:00Z"`
} // @name TodoResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"todo not found"`
} // @name ErrorResponse

// MessageResponse is returned by operations with no record to echo back.
type MessageResponse struct {
	Message string `json:"message" example:"todo deleted"`
} // @name MessageResponse

func toTodoResponse(t *models.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title.String(),
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// todoIDFromRequest parses the {id} route parameter. A malformed id is
// indistinguishable from a missing record to the caller, so it yields 404.
func todoIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSON(w, http.StatusNotFound, ErrorResponse{Error: "todo not found"})
		return uuid.Nil, false
	}
	return id, true
}
