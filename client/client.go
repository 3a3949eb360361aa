// Package client is the Go client for the taskdeck API: a thin typed HTTP
// layer (Client) plus an in-memory state holder (Session) that keeps a local
// todo list consistent with the server across mutations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Error taxonomy. Every non-2xx response maps to exactly one of these;
// anything transport-level (connection refused, malformed body, 5xx) is a
// *TransportError.
var (
	// ErrUnauthorized means no valid session (HTTP 401).
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden means the record exists but belongs to another user (HTTP 403).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means no such record (HTTP 404).
	ErrNotFound = errors.New("not found")

	// ErrValidation means the server rejected the payload (HTTP 400/409/422).
	ErrValidation = errors.New("validation failed")
)

// TransportError wraps network failures and unexpected server responses.
type TransportError struct {
	Op  string // e.g. "POST /todos"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Todo is the wire representation returned by the server.
type Todo struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// User is the wire representation of an account.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTodoInput is the payload for CreateTodo.
type CreateTodoInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Completed   bool    `json:"completed,omitempty"`
}

// UpdateTodoInput is the payload for UpdateTodo. Nil fields are omitted from
// the PATCH body and left unchanged server-side. ClearDescription sends an
// explicit null to erase the description.
type UpdateTodoInput struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Completed        *bool
}

func (in UpdateTodoInput) body() map[string]any {
	b := map[string]any{}
	if in.Title != nil {
		b["title"] = *in.Title
	}
	if in.ClearDescription {
		b["description"] = nil
	} else if in.Description != nil {
		b["description"] = *in.Description
	}
	if in.Completed != nil {
		b["completed"] = *in.Completed
	}
	return b
}

// Client is a typed HTTP client for the taskdeck API. The session cookie set
// by Login is held in an in-memory cookie jar, so one Client instance
// corresponds to one authenticated browser session.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. A cookie jar is added
// if the given client has none.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns a Client for the API rooted at baseURL
// (e.g. "http://localhost:8080/api").
func New(baseURL string, opts ...Option) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	c := &Client{baseURL: strings.TrimRight(baseURL, "/")}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, email, password string) (User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/auth/register",
		map[string]string{"email": email, "password": password}, &user)
	return user, err
}

// Login verifies credentials and stores the session cookie in the jar.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/auth/login",
		map[string]string{"email": email, "password": password}, &user)
	return user, err
}

// Logout expires the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// ListTodos returns the user's todos, newest first.
func (c *Client) ListTodos(ctx context.Context) ([]Todo, error) {
	var todos []Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// CreateTodo creates a todo and returns the persisted record.
func (c *Client) CreateTodo(ctx context.Context, in CreateTodoInput) (Todo, error) {
	var todo Todo
	err := c.do(ctx, http.MethodPost, "/todos", in, &todo)
	return todo, err
}

// GetTodo fetches one todo by id.
func (c *Client) GetTodo(ctx context.Context, id uuid.UUID) (Todo, error) {
	var todo Todo
	err := c.do(ctx, http.MethodGet, "/todos/"+id.String(), nil, &todo)
	return todo, err
}

// UpdateTodo applies a partial update and returns the refreshed record.
func (c *Client) UpdateTodo(ctx context.Context, id uuid.UUID, in UpdateTodoInput) (Todo, error) {
	var todo Todo
	err := c.do(ctx, http.MethodPatch, "/todos/"+id.String(), in.body(), &todo)
	return todo, err
}

// DeleteTodo removes a todo.
func (c *Client) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+id.String(), nil, nil)
}

// do performs one request and decodes the response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("encode body: %w", err)}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if err := statusToError(op, resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

// statusToError maps a non-2xx response to the client error taxonomy.
// The server's {"error": ...} message is attached when present.
func statusToError(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := serverMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return wrapWithMessage(ErrUnauthorized, msg)
	case http.StatusForbidden:
		return wrapWithMessage(ErrForbidden, msg)
	case http.StatusNotFound:
		return wrapWithMessage(ErrNotFound, msg)
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return wrapWithMessage(ErrValidation, msg)
	default:
		return &TransportError{Op: op, Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)}
	}
}

func serverMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&payload); err != nil || payload.Error == "" {
		return ""
	}
	return payload.Error
}

func wrapWithMessage(sentinel error, msg string) error {
	if msg == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}
