package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/taskdeck/pkg/config"
	"github.com/ghuser/taskdeck/pkg/logger"
)

func newTestSession(t *testing.T) (*Session, *fakeServer) {
	t.Helper()
	f := newFakeServer()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log := logger.New(&config.Config{LogLevel: "error"})
	return NewSession(c, log), f
}

func titles(todos []Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.Title
	}
	return out
}

func TestSession_startsLoading(t *testing.T) {
	s, _ := newTestSession(t)
	if s.State() != StateLoading {
		t.Errorf("expected StateLoading, got %v", s.State())
	}
	if len(s.Todos()) != 0 {
		t.Error("expected empty list before Load")
	}
}

func TestSession_Load(t *testing.T) {
	s, f := newTestSession(t)
	f.seed("first", false)
	f.seed("second", true)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.State() != StateReady {
		t.Errorf("expected StateReady, got %v", s.State())
	}

	got := titles(s.Todos())
	if len(got) != 2 || got[0] != "second" || got[1] != "first" {
		t.Errorf("expected [second first], got %v", got)
	}
}

func TestSession_LoadFailureThenRetry(t *testing.T) {
	s, f := newTestSession(t)
	f.seed("survivor", false)

	f.failNext(http.StatusInternalServerError)
	err := s.Load(context.Background())
	if err == nil {
		t.Fatal("expected Load to fail")
	}
	if s.State() != StateError {
		t.Errorf("expected StateError, got %v", s.State())
	}
	if len(s.Todos()) != 0 {
		t.Error("expected empty list after failed Load")
	}
	if s.Err() == nil {
		t.Error("expected recorded error")
	}

	// A later retry recovers.
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("retry Load: %v", err)
	}
	if s.State() != StateReady {
		t.Errorf("expected StateReady after retry, got %v", s.State())
	}
	if s.Err() != nil {
		t.Errorf("expected cleared error, got %v", s.Err())
	}
	if got := titles(s.Todos()); len(got) != 1 || got[0] != "survivor" {
		t.Errorf("unexpected list after retry: %v", got)
	}
}

func TestSession_CreateInsertsAtFront(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := s.Create(context.Background(), CreateTodoInput{Title: "A"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(context.Background(), CreateTodoInput{Title: "B"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got := titles(s.Todos())
	if len(got) != 2 || got[0] != "B" || got[1] != "A" {
		t.Errorf("expected [B A], got %v", got)
	}
}

func TestSession_CreateFailureRetainsList(t *testing.T) {
	s, f := newTestSession(t)
	f.seed("existing", false)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	_, err := s.Create(context.Background(), CreateTodoInput{Title: "   "})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	// The prior list survives and the error is exposed until the next success.
	if got := titles(s.Todos()); len(got) != 1 || got[0] != "existing" {
		t.Errorf("expected list retained, got %v", got)
	}
	if !errors.Is(s.Err(), ErrValidation) {
		t.Errorf("expected recorded ErrValidation, got %v", s.Err())
	}
	if s.State() != StateReady {
		t.Errorf("expected StateReady to survive a failed mutation, got %v", s.State())
	}

	if _, err := s.Create(context.Background(), CreateTodoInput{Title: "valid"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.Err() != nil {
		t.Errorf("expected error cleared by success, got %v", s.Err())
	}
}

func TestSession_UpdateReplacesInPlace(t *testing.T) {
	s, f := newTestSession(t)
	f.seed("old title", false)
	target := f.seed("target", false)
	f.seed("newer", false)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	title := "renamed"
	updated, err := s.Update(context.Background(), target.ID, UpdateTodoInput{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "renamed" {
		t.Errorf("unexpected title: %q", updated.Title)
	}

	got := titles(s.Todos())
	if len(got) != 3 || got[0] != "newer" || got[1] != "renamed" || got[2] != "old title" {
		t.Errorf("expected in-place replacement, got %v", got)
	}
}

func TestSession_ToggleIssuesOneRequest(t *testing.T) {
	s, f := newTestSession(t)
	seeded := f.seed("task", false)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	before := f.requestCount()
	toggled, err := s.Toggle(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !toggled.Completed {
		t.Error("expected completed=true")
	}
	if got := f.requestCount() - before; got != 1 {
		t.Errorf("expected exactly 1 request, got %d", got)
	}

	// Second toggle restores the original flag.
	toggled, err = s.Toggle(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if toggled.Completed {
		t.Error("expected completed=false after double toggle")
	}
}

func TestSession_ToggleUnknownIDSkipsNetwork(t *testing.T) {
	s, f := newTestSession(t)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	before := f.requestCount()
	_, err := s.Toggle(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if got := f.requestCount(); got != before {
		t.Errorf("expected no network call, saw %d extra requests", got-before)
	}
}

func TestSession_DeleteRemovesFromList(t *testing.T) {
	s, f := newTestSession(t)
	keep := f.seed("keep", false)
	remove := f.seed("remove", false)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := s.Delete(context.Background(), remove.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	todos := s.Todos()
	if len(todos) != 1 || todos[0].ID != keep.ID {
		t.Errorf("unexpected list after delete: %v", titles(todos))
	}
}

func TestSession_DeleteFailureRetainsList(t *testing.T) {
	s, f := newTestSession(t)
	seeded := f.seed("task", false)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	f.failNext(http.StatusInternalServerError)
	err := s.Delete(context.Background(), seeded.ID)
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if len(s.Todos()) != 1 {
		t.Error("expected list retained after failed delete")
	}
}

func TestSession_SubscribeAndUnsubscribe(t *testing.T) {
	s, f := newTestSession(t)
	f.seed("task", false)

	var calls int
	unsubscribe := s.Subscribe(func() { calls++ })

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 notification after Load, got %d", calls)
	}

	if _, err := s.Create(context.Background(), CreateTodoInput{Title: "more"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 notifications, got %d", calls)
	}

	unsubscribe()
	if _, err := s.Create(context.Background(), CreateTodoInput{Title: "even more"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected no notification after unsubscribe, got %d", calls)
	}
}

func TestSession_SubscriberNotifiedOnFailure(t *testing.T) {
	s, f := newTestSession(t)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	var calls int
	unsubscribe := s.Subscribe(func() { calls++ })
	defer unsubscribe()

	f.failNext(http.StatusInternalServerError)
	if _, err := s.Create(context.Background(), CreateTodoInput{Title: "doomed"}); err == nil {
		t.Fatal("expected Create to fail")
	}
	if calls != 1 {
		t.Errorf("expected subscriber notified on failure, got %d calls", calls)
	}
}

// Subscribers run outside the session lock, so they can read back into it.
func TestSession_SubscriberMayReenter(t *testing.T) {
	s, f := newTestSession(t)
	f.seed("task", false)

	var seen int
	unsubscribe := s.Subscribe(func() { seen = len(s.Todos()) })
	defer unsubscribe()

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if seen != 1 {
		t.Errorf("expected subscriber to observe 1 todo, got %d", seen)
	}
}

func TestSession_TodosReturnsCopy(t *testing.T) {
	s, f := newTestSession(t)
	f.seed("task", false)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	todos := s.Todos()
	todos[0].Title = "mutated"

	if got := s.Todos()[0].Title; got != "task" {
		t.Errorf("expected internal list unaffected, got %q", got)
	}
}

func TestState_String(t *testing.T) {
	cases := map[State]string{
		StateLoading: "loading",
		StateReady:   "ready",
		StateError:   "error",
		State(99):    "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
