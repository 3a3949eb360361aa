package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	userdomain "github.com/ghuser/taskdeck/services/user/domain"
	"github.com/ghuser/taskdeck/services/user/domain/models"
	"github.com/ghuser/taskdeck/services/user/domain/repositories"
)

const minPasswordLength = 8

// UserService handles registration and credential verification.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService returns a UserService wired with the given repository.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates an account for the given credentials.
// Returns ErrEmailTaken if the email is already registered.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	addr, err := models.NewEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", userdomain.ErrInvalidEmail, err)
	}

	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: must be at least %d characters", userdomain.ErrWeakPassword, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.NewUser(addr, hash)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// Authenticate verifies the email/password pair and returns the matching user.
// Unknown email and wrong password both yield ErrInvalidCredentials so the
// response does not reveal which accounts exist.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	addr, err := models.NewEmail(email)
	if err != nil {
		return nil, userdomain.ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			// Burn a bcrypt comparison anyway to keep timing uniform.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, userdomain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, userdomain.ErrInvalidCredentials
	}
	return user, nil
}

// GetByID returns the user for an authenticated session.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// dummyHash is a valid bcrypt hash of an unguessable value, compared against
// when the email is unknown so both failure paths cost one bcrypt check.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("taskdeck-timing-pad"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()
