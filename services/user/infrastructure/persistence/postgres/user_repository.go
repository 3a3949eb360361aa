package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/taskdeck/pkg/database"
	userdomain "github.com/ghuser/taskdeck/services/user/domain"
	"github.com/ghuser/taskdeck/services/user/domain/models"
)

// UserRepository implements repositories.UserRepository against PostgreSQL.
type UserRepository struct {
	db *database.Database
}

// NewUserRepository returns a UserRepository backed by the given connection pool.
func NewUserRepository(db *database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Save persists a new User. Returns ErrEmailTaken on the users_email_key
// unique constraint.
func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	const q = `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.db.DB().ExecContext(ctx, q,
		user.ID,
		user.Email.String(),
		user.PasswordHash,
		user.CreatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return userdomain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID retrieves a User by ID. Returns ErrUserNotFound if not found.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const q = `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`
	return r.scanUser(r.db.DB().QueryRowContext(ctx, q, id))
}

// GetByEmail retrieves a User by normalized email. Returns ErrUserNotFound if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email models.Email) (*models.User, error) {
	const q = `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`
	return r.scanUser(r.db.DB().QueryRowContext(ctx, q, email.String()))
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var (
		user  models.User
		email string
	)
	if err := row.Scan(&user.ID, &email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	user.Email = models.Email(email)
	return &user, nil
}
