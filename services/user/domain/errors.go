package domain

import "errors"

// Sentinel errors for the user domain. Use errors.Is() to check these.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates another account already uses the email address.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed email/password check.
	// Deliberately covers both unknown email and wrong password so login
	// responses do not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidEmail indicates the email violates domain constraints.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrWeakPassword indicates the password violates domain constraints.
	ErrWeakPassword = errors.New("password too weak")
)
