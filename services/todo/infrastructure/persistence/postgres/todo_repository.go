package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/taskdeck/pkg/database"
	"github.com/ghuser/taskdeck/pkg/events"
	tododomain "github.com/ghuser/taskdeck/services/todo/domain"
	domainevents "github.com/ghuser/taskdeck/services/todo/domain/events"
	"github.com/ghuser/taskdeck/services/todo/domain/models"
	"github.com/ghuser/taskdeck/services/todo/domain/repositories"
)

// TodoRepository implements repositories.TodoRepository against PostgreSQL.
type TodoRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewTodoRepository returns a TodoRepository backed by the given connection pool
// and event bus. The bus is used to publish TodoCreatedEvents after a successful save.
func NewTodoRepository(db *database.Database, bus *events.EventBus) *TodoRepository {
	return &TodoRepository{db: db, bus: bus}
}

// Save persists a new Todo and publishes a TodoCreatedEvent within the same transaction.
func (r *TodoRepository) Save(ctx context.Context, todo *models.Todo) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		const q = `
			INSERT INTO todos (id, owner_id, title, description, completed, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err := tx.ExecContext(ctx, q,
			todo.ID,
			todo.OwnerID,
			todo.Title.String(),
			todo.Description,
			todo.Completed,
			todo.CreatedAt,
			todo.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert todo: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, todo); err != nil {
				return fmt.Errorf("publish todo created: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a Todo by ID. Returns ErrTodoNotFound if not found.
// Not owner-scoped; the service layer decides between 403 and 404.
func (r *TodoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Todo, error) {
	const q = `
		SELECT id, owner_id, title, description, completed, created_at, updated_at
		FROM todos
		WHERE id = $1`
	todo, err := scanTodo(r.db.DB().QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tododomain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("query todo: %w", err)
	}
	return todo, nil
}

// FindByOwnerID retrieves a paginated, newest-first list of todos and total count
// for the given user.
func (r *TodoRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, opts repositories.QueryOpts) ([]*models.Todo, int, error) {
	const q = `
		SELECT id, owner_id, title, description, completed, created_at, updated_at
		FROM todos
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.DB().QueryContext(ctx, q, ownerID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var todos []*models.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate todos: %w", err)
	}

	var total int
	const countQ = `SELECT COUNT(*) FROM todos WHERE owner_id = $1`
	if err := r.db.DB().QueryRowContext(ctx, countQ, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count todos: %w", err)
	}
	return todos, total, nil
}

// Update persists field changes to an existing Todo.
// Last write wins: no version check is performed on concurrent updates.
func (r *TodoRepository) Update(ctx context.Context, todo *models.Todo) error {
	const q = `
		UPDATE todos
		SET title = $2, description = $3, completed = $4, updated_at = $5
		WHERE id = $1`
	res, err := r.db.DB().ExecContext(ctx, q,
		todo.ID,
		todo.Title.String(),
		todo.Description,
		todo.Completed,
		todo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update todo rows affected: %w", err)
	}
	if affected == 0 {
		return tododomain.ErrTodoNotFound
	}
	return nil
}

// Delete removes a todo by ID. Returns ErrTodoNotFound if no row matched.
func (r *TodoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo rows affected: %w", err)
	}
	if affected == 0 {
		return tododomain.ErrTodoNotFound
	}
	return nil
}

// PurgeCompleted hard-deletes completed todos last updated before cutoff.
func (r *TodoRepository) PurgeCompleted(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.DB().ExecContext(ctx,
		`DELETE FROM todos WHERE completed = TRUE AND updated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge completed todos: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge rows affected: %w", err)
	}
	return affected, nil
}

func (r *TodoRepository) publishCreated(tx *sql.Tx, todo *models.Todo) error {
	event := domainevents.TodoCreatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		TodoID:      todo.ID,
		OwnerID:     todo.OwnerID,
		Title:       todo.Title.String(),
		Description: todo.Description,
		Completed:   todo.Completed,
		OccurredAt:  todo.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicTodoCreated, msg)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*models.Todo, error) {
	var (
		todo        models.Todo
		title       string
		description sql.NullString
	)
	if err := row.Scan(
		&todo.ID,
		&todo.OwnerID,
		&title,
		&description,
		&todo.Completed,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	); err != nil {
		return nil, err
	}
	todo.Title = models.Title(title)
	if description.Valid {
		todo.Description = &description.String
	}
	return &todo, nil
}
