package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/taskdeck/pkg/cache"
	tododomain "github.com/ghuser/taskdeck/services/todo/domain"
	"github.com/ghuser/taskdeck/services/todo/domain/models"
	"github.com/ghuser/taskdeck/services/todo/domain/repositories"
	domainsvcs "github.com/ghuser/taskdeck/services/todo/domain/services"
)

// TodoPatch carries the field subset of a PATCH request.
// Nil pointers mean "leave unchanged". DescriptionSet distinguishes
// "clear the description" (explicit null) from "leave it alone" (absent).
type TodoPatch struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Completed      *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && !p.DescriptionSet && p.Completed == nil
}

// TodoService orchestrates creation, retrieval, and mutation of Todos for the
// authenticated owner. Event publishing is handled by the repository layer
// (outbox pattern). Reads are served from Redis cache when available.
//
// Every operation enforces ownership: a todo owned by a different user yields
// ErrNotOwner, a missing todo yields ErrTodoNotFound. Concurrent updates to
// the same todo are resolved last-write-wins.
type TodoService struct {
	repo  repositories.TodoRepository
	cache *pkgcache.TodoCache
}

// NewTodoService returns a TodoService wired with the given repository and cache.
// cache may be nil (tests, worker contexts without Redis).
func NewTodoService(repo repositories.TodoRepository, todoCache *pkgcache.TodoCache) *TodoService {
	return &TodoService{repo: repo, cache: todoCache}
}

// Create validates and persists a Todo owned by ownerID.
// The repository publishes TodoCreatedEvent transactionally.
func (s *TodoService) Create(ctx context.Context, ownerID uuid.UUID, title string, description *string, completed bool) (*models.Todo, error) {
	t, err := models.NewTitle(title)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tododomain.ErrInvalidTitle, err)
	}

	todo, err := models.NewTodo(ownerID, t, description, completed)
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	if err := domainsvcs.ValidateTodoForCreation(todo); err != nil {
		return nil, fmt.Errorf("%w: %w", tododomain.ErrInvalidTitle, err)
	}

	if err := s.repo.Save(ctx, todo); err != nil {
		return nil, fmt.Errorf("save todo: %w", err)
	}

	return todo, nil
}

// Get retrieves a Todo owned by ownerID using a read-through cache pattern:
//  1. Check Redis cache first (key is owner-scoped, so a hit implies ownership).
//  2. On cache miss (or cache error), query Postgres and check ownership.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *TodoService) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Todo, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, ownerID, id); err == nil {
			return cachedToModel(cached), nil
		} else if !errors.Is(err, redis.Nil) {
			// Cache unavailable; fall through to Postgres.
			_ = err
		}
	}

	todo, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), modelToCached(todo))
		}()
	}

	return todo, nil
}

// List returns a paginated, newest-first slice of the user's todos plus total count.
func (s *TodoService) List(ctx context.Context, ownerID uuid.UUID, opts repositories.QueryOpts) ([]*models.Todo, int, error) {
	todos, total, err := s.repo.FindByOwnerID(ctx, ownerID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list todos: %w", err)
	}
	return todos, total, nil
}

// Update applies the provided field subset to a todo owned by ownerID and
// refreshes UpdatedAt. Unset patch fields are left unchanged.
func (s *TodoService) Update(ctx context.Context, ownerID, id uuid.UUID, patch TodoPatch) (*models.Todo, error) {
	todo, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		t, err := models.NewTitle(*patch.Title)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", tododomain.ErrInvalidTitle, err)
		}
		if err := domainsvcs.ValidateTitle(t); err != nil {
			return nil, fmt.Errorf("%w: %w", tododomain.ErrInvalidTitle, err)
		}
		todo.SetTitle(t)
	}
	if patch.DescriptionSet {
		todo.SetDescription(patch.Description)
	}
	if patch.Completed != nil {
		todo.SetCompleted(*patch.Completed)
	}

	if err := s.persistUpdate(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Toggle flips the completion flag of a todo owned by ownerID.
// Toggling twice restores the original value.
func (s *TodoService) Toggle(ctx context.Context, ownerID, id uuid.UUID) (*models.Todo, error) {
	todo, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	todo.Toggle()

	if err := s.persistUpdate(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Delete removes a todo owned by ownerID. Hard removal; no tombstone.
func (s *TodoService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), ownerID, id)
	}
	return nil
}

// getOwned loads a todo and enforces ownership, distinguishing
// ErrTodoNotFound (no record) from ErrNotOwner (record exists, wrong user).
func (s *TodoService) getOwned(ctx context.Context, ownerID, id uuid.UUID) (*models.Todo, error) {
	todo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, tododomain.ErrTodoNotFound) {
			return nil, tododomain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}
	if !todo.IsOwnedBy(ownerID) {
		return nil, tododomain.ErrNotOwner
	}
	return todo, nil
}

func (s *TodoService) persistUpdate(ctx context.Context, todo *models.Todo) error {
	if err := s.repo.Update(ctx, todo); err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Set(context.Background(), modelToCached(todo))
	}
	return nil
}

func cachedToModel(c *pkgcache.CachedTodo) *models.Todo {
	return &models.Todo{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		Title:       models.Title(c.Title),
		Description: c.Description,
		Completed:   c.Completed,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func modelToCached(t *models.Todo) *pkgcache.CachedTodo {
	return &pkgcache.CachedTodo{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title.String(),
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
