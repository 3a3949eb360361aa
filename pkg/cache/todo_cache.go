package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// TodoCacheTTL is the time-to-live for cached todos.
	TodoCacheTTL = 24 * time.Hour

	todoCacheKeyPrefix = "todo"
)

// CachedTodo is the denormalized read model stored in Redis.
// Fields are stored as a Redis hash.
type CachedTodo struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TodoCache provides structured read/write operations for todo cache entries.
// Keys are scoped by ownerID to prevent cross-user data leakage.
// Key format: "todo:{ownerID}:{todoID}"
type TodoCache struct {
	client *RedisClient
}

// NewTodoCache creates a new TodoCache backed by the given RedisClient.
func NewTodoCache(r *RedisClient) *TodoCache {
	return &TodoCache{client: r}
}

// Get retrieves a cached todo by owner + todo ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *TodoCache) Get(ctx context.Context, ownerID, todoID uuid.UUID) (*CachedTodo, error) {
	key := c.key(ownerID, todoID)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	oid, err := uuid.Parse(vals["owner_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse owner_id: %w", err)
	}
	completed, err := strconv.ParseBool(vals["completed"])
	if err != nil {
		return nil, fmt.Errorf("cache parse completed: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}

	var description *string
	if d, ok := vals["description"]; ok {
		description = &d
	}

	return &CachedTodo{
		ID:          id,
		OwnerID:     oid,
		Title:       vals["title"],
		Description: description,
		Completed:   completed,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// Set writes a cached todo as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
// A nil Description is represented by leaving the hash field unset.
func (c *TodoCache) Set(ctx context.Context, todo *CachedTodo) error {
	key := c.key(todo.OwnerID, todo.ID)
	fields := []any{
		"id", todo.ID.String(),
		"owner_id", todo.OwnerID.String(),
		"title", todo.Title,
		"completed", strconv.FormatBool(todo.Completed),
		"created_at", todo.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at", todo.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if todo.Description != nil {
		fields = append(fields, "description", *todo.Description)
	}

	pipe := c.client.Client().Pipeline()
	pipe.Del(ctx, key) // drop stale fields (e.g. description cleared to nil)
	pipe.HSet(ctx, key, fields...)
	pipe.Expire(ctx, key, TodoCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached todo.
func (c *TodoCache) Delete(ctx context.Context, ownerID, todoID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(ownerID, todoID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "todo:{ownerID}:{todoID}"
func (c *TodoCache) key(ownerID, todoID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", todoCacheKeyPrefix, ownerID, todoID)
}
