package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Integration tests — skipped unless REDIS_URL is set.
func TestTodoCacheIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	rc, err := NewRedisClient(newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	tc := NewTodoCache(rc)
	ctx := context.Background()

	newCached := func(description *string) *CachedTodo {
		now := time.Now().UTC().Truncate(time.Millisecond)
		return &CachedTodo{
			ID:          uuid.New(),
			OwnerID:     uuid.New(),
			Title:       "Buy milk",
			Description: description,
			Completed:   false,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	t.Run("SetGet_RoundTrip", func(t *testing.T) {
		desc := "2 liters"
		want := newCached(&desc)
		if err := tc.Set(ctx, want); err != nil {
			t.Fatalf("Set: %v", err)
		}
		defer tc.Delete(ctx, want.OwnerID, want.ID) //nolint:errcheck

		got, err := tc.Get(ctx, want.OwnerID, want.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.ID != want.ID || got.OwnerID != want.OwnerID {
			t.Errorf("identity mismatch: got %v/%v", got.ID, got.OwnerID)
		}
		if got.Title != want.Title {
			t.Errorf("unexpected title: %q", got.Title)
		}
		if got.Description == nil || *got.Description != desc {
			t.Errorf("unexpected description: %v", got.Description)
		}
		if !got.CreatedAt.Equal(want.CreatedAt) || !got.UpdatedAt.Equal(want.UpdatedAt) {
			t.Errorf("timestamp mismatch: %v / %v", got.CreatedAt, got.UpdatedAt)
		}
	})

	t.Run("Set_NilDescriptionDropsStaleField", func(t *testing.T) {
		desc := "stale"
		todo := newCached(&desc)
		if err := tc.Set(ctx, todo); err != nil {
			t.Fatalf("Set: %v", err)
		}
		defer tc.Delete(ctx, todo.OwnerID, todo.ID) //nolint:errcheck

		todo.Description = nil
		if err := tc.Set(ctx, todo); err != nil {
			t.Fatalf("Set (clear): %v", err)
		}

		got, err := tc.Get(ctx, todo.OwnerID, todo.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Description != nil {
			t.Errorf("expected nil description, got %q", *got.Description)
		}
	})

	t.Run("Get_Missing", func(t *testing.T) {
		_, err := tc.Get(ctx, uuid.New(), uuid.New())
		if !errors.Is(err, redis.Nil) {
			t.Errorf("expected redis.Nil, got %v", err)
		}
	})

	t.Run("Get_ScopedByOwner", func(t *testing.T) {
		todo := newCached(nil)
		if err := tc.Set(ctx, todo); err != nil {
			t.Fatalf("Set: %v", err)
		}
		defer tc.Delete(ctx, todo.OwnerID, todo.ID) //nolint:errcheck

		// Same todo id under a different owner is a miss.
		_, err := tc.Get(ctx, uuid.New(), todo.ID)
		if !errors.Is(err, redis.Nil) {
			t.Errorf("expected redis.Nil for foreign owner, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		todo := newCached(nil)
		if err := tc.Set(ctx, todo); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := tc.Delete(ctx, todo.OwnerID, todo.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := tc.Get(ctx, todo.OwnerID, todo.ID); !errors.Is(err, redis.Nil) {
			t.Errorf("expected redis.Nil after delete, got %v", err)
		}
	})
}
