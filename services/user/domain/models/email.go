package models

import (
	"fmt"
	"net/mail"
	"strings"
)

// Email is a value object representing a normalized (lowercased) email address.
type Email string

const maxEmailLength = 254

// NewEmail parses and normalizes an email address.
func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return "", fmt.Errorf("email must not be empty")
	}
	if len(s) > maxEmailLength {
		return "", fmt.Errorf("email must not exceed %d characters", maxEmailLength)
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", fmt.Errorf("malformed email address")
	}
	return Email(s), nil
}

// String returns the underlying string value.
func (e Email) String() string {
	return string(e)
}
