package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/taskdeck/services/user/domain/models"
)

// UserResponse is the wire representation of a User. The password hash is
// never serialized.
type UserResponse struct {
	ID        uuid.UUID `json:"id"         example:"550e8400-e29b-41d4-a716-446655440000"`
	Email     string    `json:"email"      example:"ada@example.com"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
} // @name UserResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid email or password"`
} // @name UserErrorResponse

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email.String(),
		CreatedAt: u.CreatedAt,
	}
}
