package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestTodo(t *testing.T) *Todo {
	t.Helper()
	title, err := NewTitle("Buy milk")
	if err != nil {
		t.Fatalf("NewTitle: %v", err)
	}
	todo, err := NewTodo(uuid.New(), title, nil, false)
	if err != nil {
		t.Fatalf("NewTodo: %v", err)
	}
	return todo
}

func TestNewTodo_defaults(t *testing.T) {
	ownerID := uuid.New()
	title, _ := NewTitle("Buy milk")
	desc := "2 liters"

	todo, err := NewTodo(ownerID, title, &desc, false)
	if err != nil {
		t.Fatalf("NewTodo: %v", err)
	}

	if todo.ID == uuid.Nil {
		t.Error("expected generated ID")
	}
	if todo.OwnerID != ownerID {
		t.Errorf("unexpected OwnerID: %v", todo.OwnerID)
	}
	if todo.Description == nil || *todo.Description != "2 liters" {
		t.Errorf("unexpected Description: %v", todo.Description)
	}
	if todo.Completed {
		t.Error("expected Completed=false")
	}
	if todo.CreatedAt.IsZero() || todo.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if !todo.CreatedAt.Equal(todo.UpdatedAt) {
		t.Error("expected CreatedAt == UpdatedAt on creation")
	}
}

func TestNewTodo_completedAtCreation(t *testing.T) {
	title, _ := NewTitle("Imported task")
	todo, err := NewTodo(uuid.New(), title, nil, true)
	if err != nil {
		t.Fatalf("NewTodo: %v", err)
	}
	if !todo.Completed {
		t.Error("expected Completed=true")
	}
}

func TestTodo_Toggle(t *testing.T) {
	todo := newTestTodo(t)

	todo.Toggle()
	if !todo.Completed {
		t.Error("expected Completed=true after first toggle")
	}

	todo.Toggle()
	if todo.Completed {
		t.Error("expected Completed=false after second toggle")
	}
}

func TestTodo_settersTouchUpdatedAt(t *testing.T) {
	todo := newTestTodo(t)
	before := todo.UpdatedAt
	time.Sleep(time.Millisecond)

	title, _ := NewTitle("Buy oat milk")
	todo.SetTitle(title)

	if !todo.UpdatedAt.After(before) {
		t.Error("expected SetTitle to refresh UpdatedAt")
	}
	if todo.CreatedAt != before {
		t.Error("expected CreatedAt to be unchanged")
	}
}

func TestTodo_SetDescriptionClears(t *testing.T) {
	todo := newTestTodo(t)
	desc := "details"
	todo.SetDescription(&desc)
	if todo.Description == nil {
		t.Fatal("expected description to be set")
	}

	todo.SetDescription(nil)
	if todo.Description != nil {
		t.Error("expected nil description after clearing")
	}
}

func TestTodo_IsOwnedBy(t *testing.T) {
	todo := newTestTodo(t)
	if !todo.IsOwnedBy(todo.OwnerID) {
		t.Error("expected owner to own the todo")
	}
	if todo.IsOwnedBy(uuid.New()) {
		t.Error("expected a different user to not own the todo")
	}
}
