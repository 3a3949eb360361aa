// Package services contains stateless domain services for the todo bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ghuser/taskdeck/services/todo/domain/models"
)

// ValidateTitle enforces business rules for Title beyond the structural
// constraints enforced by the Title constructor (non-blank, length <= 255).
//
// Business rules:
//   - No leading or trailing whitespace
//   - No control characters (Unicode category Cc)
func ValidateTitle(title models.Title) error {
	s := title.String()

	if s != strings.TrimSpace(s) {
		return fmt.Errorf("title must not have leading or trailing whitespace")
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("title must not contain control characters")
		}
	}

	return nil
}

// ValidateTodoForCreation performs cross-field validation on a fully-constructed
// Todo aggregate before it is persisted. It assumes the Todo was built via
// models.NewTodo (so structural constraints are already satisfied) and
// adds business-level checks that span multiple fields.
func ValidateTodoForCreation(todo *models.Todo) error {
	if todo == nil {
		return fmt.Errorf("todo cannot be nil")
	}

	if err := ValidateTitle(todo.Title); err != nil {
		return fmt.Errorf("invalid title: %w", err)
	}

	if todo.OwnerID == uuid.Nil {
		return fmt.Errorf("owner_id must be set")
	}

	if todo.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}

	return nil
}
