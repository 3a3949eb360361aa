package client

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/ghuser/taskdeck/pkg/logger"
)

// State is the Session lifecycle state.
type State int

const (
	// StateLoading is the initial state before the first Load completes.
	StateLoading State = iota
	// StateReady means the local list mirrors the server.
	StateReady
	// StateError means the initial Load failed; the local list is empty.
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Session is the single in-memory source of truth for a user's todo list,
// kept consistent with the server through the Client. Mutations are
// serialized: each one issues exactly one request and patches the local list
// only after the server confirms (insert-at-front for create, replace-by-id
// for update/toggle, remove-by-id for delete). On failure the prior list is
// retained, the error is recorded, and the error is returned to the caller
// so the invoking UI can react locally.
//
// Subscribers are notified after every state change. Notifications run
// outside the internal lock, so subscribers may call back into the Session.
type Session struct {
	api *Client
	log logger.Logger

	mu      sync.Mutex
	state   State
	todos   []Todo
	lastErr error
	subs    map[int]func()
	nextSub int
}

// NewSession returns a Session in StateLoading. Call Load to populate it.
func NewSession(api *Client, log logger.Logger) *Session {
	return &Session{
		api:   api,
		log:   log,
		state: StateLoading,
		subs:  map[int]func(){},
	}
}

// Load fetches the todo list and moves the session to StateReady, or to
// StateError (with an empty list) if the fetch fails. Safe to call again
// after an error to retry.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	todos, err := s.api.ListTodos(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "todo list load failed", "error", err)
		s.state = StateError
		s.todos = nil
		s.lastErr = err
		s.unlockAndNotify()
		return err
	}

	s.state = StateReady
	s.todos = todos
	s.lastErr = nil
	s.unlockAndNotify()
	return nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the error recorded by the most recent failed operation, or nil.
// Cleared by the next successful operation.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Todos returns a copy of the current list, newest first.
func (s *Session) Todos() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

// Subscribe registers fn to run after every state change and returns an
// unsubscribe function.
func (s *Session) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Create persists a new todo and inserts it at the front of the local list.
func (s *Session) Create(ctx context.Context, in CreateTodoInput) (Todo, error) {
	s.mu.Lock()
	todo, err := s.api.CreateTodo(ctx, in)
	if err != nil {
		return Todo{}, s.fail(ctx, "create todo", err)
	}

	s.todos = append([]Todo{todo}, s.todos...)
	s.lastErr = nil
	s.unlockAndNotify()
	return todo, nil
}

// Update patches a todo and replaces it in the local list.
func (s *Session) Update(ctx context.Context, id uuid.UUID, in UpdateTodoInput) (Todo, error) {
	s.mu.Lock()
	todo, err := s.api.UpdateTodo(ctx, id, in)
	if err != nil {
		return Todo{}, s.fail(ctx, "update todo", err)
	}

	s.replaceLocked(todo)
	s.lastErr = nil
	s.unlockAndNotify()
	return todo, nil
}

// Toggle flips the completion flag of a locally-known todo. The current flag
// is read from the local list so exactly one request is issued; toggling an
// id that is not in the list fails with ErrNotFound without a network call.
func (s *Session) Toggle(ctx context.Context, id uuid.UUID) (Todo, error) {
	s.mu.Lock()
	current, ok := s.findLocked(id)
	if !ok {
		return Todo{}, s.fail(ctx, "toggle todo", ErrNotFound)
	}

	completed := !current.Completed
	todo, err := s.api.UpdateTodo(ctx, id, UpdateTodoInput{Completed: &completed})
	if err != nil {
		return Todo{}, s.fail(ctx, "toggle todo", err)
	}

	s.replaceLocked(todo)
	s.lastErr = nil
	s.unlockAndNotify()
	return todo, nil
}

// Delete removes a todo on the server and from the local list.
func (s *Session) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	if err := s.api.DeleteTodo(ctx, id); err != nil {
		return s.fail(ctx, "delete todo", err)
	}

	kept := s.todos[:0]
	for _, t := range s.todos {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.todos = kept
	s.lastErr = nil
	s.unlockAndNotify()
	return nil
}

// fail records err, logs it, notifies subscribers, and returns err for the
// caller to re-raise. The todo list is left untouched. Called with mu held.
func (s *Session) fail(ctx context.Context, op string, err error) error {
	s.log.WarnContext(ctx, "todo mutation failed", "op", op, "error", err)
	s.lastErr = err
	s.unlockAndNotify()
	return err
}

// findLocked returns the local copy of the todo with the given id.
func (s *Session) findLocked(id uuid.UUID) (Todo, bool) {
	for _, t := range s.todos {
		if t.ID == id {
			return t, true
		}
	}
	return Todo{}, false
}

// replaceLocked swaps the stored todo with the given id for the fresh copy.
// A todo the server knows but the list does not (e.g. created by another
// client of the same user) is appended rather than dropped.
func (s *Session) replaceLocked(todo Todo) {
	for i, t := range s.todos {
		if t.ID == todo.ID {
			s.todos[i] = todo
			return
		}
	}
	s.todos = append(s.todos, todo)
}

// unlockAndNotify snapshots subscribers, releases the lock, and invokes them.
func (s *Session) unlockAndNotify() {
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// IsTransport reports whether err is a transport-level failure rather than
// one of the API sentinels.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
