package models

import (
	"fmt"
	"strings"
)

// Title is a value object representing a valid todo title.
// Encapsulates validation rules: non-blank, 1 <= len(title) <= 255.
type Title string

const (
	minTitleLength = 1
	maxTitleLength = 255
)

// NewTitle constructs a valid Title or returns an error if constraints are violated.
// A whitespace-only string counts as empty.
func NewTitle(s string) (Title, error) {
	if len(strings.TrimSpace(s)) < minTitleLength {
		return "", fmt.Errorf("title must not be empty")
	}
	if len(s) > maxTitleLength {
		return "", fmt.Errorf("title must not exceed %d characters", maxTitleLength)
	}
	return Title(s), nil
}

// String returns the underlying string value.
func (t Title) String() string {
	return string(t)
}
