// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrDatabaseCorrupted = errors.New("database corrupted")
	ErrAlreadySettled    = errors.New("credit already settled")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// NoteExamples are shown when a Magic Note cannot be understood.
var NoteExamples = []string{
	"Sold 50*8 to Shop",
	"Spent 200 on Lunch",
	"Sold 1000 to Rahul advance 200 UPI",
	"Lent 1000 to Ajay cash",
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// NewNoteError wraps a parse failure with a hint listing example notes.
func NewNoteError(err error) error {
	var b strings.Builder
	b.WriteString("Could not understand that. Try something like:")
	for _, ex := range NoteExamples {
		b.WriteString("\n  ")
		b.WriteString(ex)
	}
	return NewUserError(b.String(), err)
}
