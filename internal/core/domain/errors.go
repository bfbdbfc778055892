package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("not authorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	ErrJobNotFound = errors.New("job not found")
	ErrNotJobOwner = errors.New("not authorized to modify this job")
)

// FieldError is a single failed rule on an input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := e.Messages()
	if len(msgs) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add records a failed rule.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Messages returns the field messages in the order they were added.
func (e *ValidationError) Messages() []string {
	out := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		out[i] = f.Message
	}
	return out
}

// Err returns e when at least one field failed, nil otherwise.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// DuplicateKeyError is returned when a unique field is already taken.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}
