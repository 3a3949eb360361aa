package domain

import "errors"

// Sentinel errors for the todo domain. Use errors.Is() to check these.
var (
	// ErrTodoNotFound indicates the requested todo does not exist.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrNotOwner indicates the todo exists but belongs to a different user.
	// Kept distinct from ErrTodoNotFound so the API can return 403 vs 404.
	ErrNotOwner = errors.New("todo belongs to another user")

	// ErrInvalidTitle indicates the todo title violates domain constraints.
	ErrInvalidTitle = errors.New("invalid todo title")
)
