package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	userdomain "github.com/ghuser/taskdeck/services/user/domain"
	"github.com/ghuser/taskdeck/services/user/domain/models"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]models.User{}}
}

func (f *fakeUserRepo) Save(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return userdomain.ErrEmailTaken
		}
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	copied := u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email models.Email) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id := range f.users {
		if f.users[id].Email == email {
			copied := f.users[id]
			return &copied, nil
		}
	}
	return nil, userdomain.ErrUserNotFound
}

func TestUserService_Register(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	user, err := svc.Register(context.Background(), "Ada@Example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email.String() != "ada@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if len(user.PasswordHash) == 0 {
		t.Error("expected password hash to be set")
	}
	if string(user.PasswordHash) == "correct horse battery" {
		t.Error("password must not be stored in plaintext")
	}
}

func TestUserService_Register_invalidEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	for _, email := range []string{"", "not-an-email", "a b@example.com"} {
		_, err := svc.Register(context.Background(), email, "correct horse battery")
		if !errors.Is(err, userdomain.ErrInvalidEmail) {
			t.Errorf("email %q: expected ErrInvalidEmail, got %v", email, err)
		}
	}
}

func TestUserService_Register_weakPassword(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), "ada@example.com", "short")
	if !errors.Is(err, userdomain.ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
}

func TestUserService_Register_duplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	if _, err := svc.Register(context.Background(), "ada@example.com", "correct horse battery"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Case differences collapse under normalization.
	_, err := svc.Register(context.Background(), "ADA@example.com", "another password")
	if !errors.Is(err, userdomain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Authenticate(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	registered, err := svc.Register(context.Background(), "ada@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := svc.Authenticate(context.Background(), "ada@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("unexpected user: %v", user.ID)
	}
}

func TestUserService_Authenticate_failures(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	if _, err := svc.Register(context.Background(), "ada@example.com", "correct horse battery"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "ada@example.com", "wrong password"},
		{"unknown email", "nobody@example.com", "correct horse battery"},
		{"malformed email", "not-an-email", "correct horse battery"},
	}
	for _, tc := range cases {
		_, err := svc.Authenticate(context.Background(), tc.email, tc.password)
		if !errors.Is(err, userdomain.ErrInvalidCredentials) {
			t.Errorf("%s: expected ErrInvalidCredentials, got %v", tc.name, err)
		}
	}
}

func TestUserService_GetByID(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	registered, err := svc.Register(context.Background(), "ada@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := svc.GetByID(context.Background(), registered.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.Email != registered.Email {
		t.Errorf("unexpected email: %q", user.Email)
	}

	_, err = svc.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, userdomain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
