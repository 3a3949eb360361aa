package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/taskdeck/services/todo/domain/models"
)

func TestValidateTitle_valid(t *testing.T) {
	for _, s := range []string{"Buy milk", "a", "task with spaces inside"} {
		if err := ValidateTitle(models.Title(s)); err != nil {
			t.Errorf("expected %q to be valid, got %v", s, err)
		}
	}
}

func TestValidateTitle_surroundingWhitespace(t *testing.T) {
	for _, s := range []string{" leading", "trailing ", " both "} {
		if err := ValidateTitle(models.Title(s)); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestValidateTitle_controlCharacters(t *testing.T) {
	for _, s := range []string{"a\x00b", "line\nbreak", "tab\there"} {
		if err := ValidateTitle(models.Title(s)); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestValidateTodoForCreation(t *testing.T) {
	title, err := models.NewTitle("Buy milk")
	if err != nil {
		t.Fatalf("NewTitle: %v", err)
	}
	todo, err := models.NewTodo(uuid.New(), title, nil, false)
	if err != nil {
		t.Fatalf("NewTodo: %v", err)
	}

	if err := ValidateTodoForCreation(todo); err != nil {
		t.Errorf("expected valid todo, got %v", err)
	}
}

func TestValidateTodoForCreation_nil(t *testing.T) {
	if err := ValidateTodoForCreation(nil); err == nil {
		t.Error("expected error for nil todo")
	}
}

func TestValidateTodoForCreation_missingOwner(t *testing.T) {
	title, _ := models.NewTitle("Buy milk")
	todo, _ := models.NewTodo(uuid.New(), title, nil, false)
	todo.OwnerID = uuid.Nil

	if err := ValidateTodoForCreation(todo); err == nil {
		t.Error("expected error for missing owner")
	}
}
