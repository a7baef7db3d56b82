// Package apperror holds the error vocabulary shared by storage, service and
// transport layers.
//
// Stores return the sentinels (optionally wrapped); the service translates
// them into *NotFoundError or *ValidationError, which the HTTP layer maps to
// status codes.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrReference means a foreign key points at a row that does not exist.
	ErrReference = errors.New("referenced entity not found")
)

// Field error codes.
const (
	CodeInvalid   = "invalid"
	CodeRequired  = "required"
	CodeReference = "reference"
)

// FieldError describes one violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation. It is never
// returned after a partial write.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsReference reports whether the failure is a missing or dangling parent
// reference rather than a malformed value.
func (e *ValidationError) IsReference() bool {
	for _, f := range e.Fields {
		if f.Code == CodeReference || f.Code == CodeRequired {
			return true
		}
	}
	return false
}

// Invalid builds a single-field validation error.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Code: CodeInvalid, Message: message}}}
}

// Reference builds the error for a parent that does not exist.
func Reference(field, entity string, id int64) *ValidationError {
	return &ValidationError{Fields: []FieldError{{
		Field:   field,
		Code:    CodeReference,
		Message: fmt.Sprintf("referenced %s %d not found", strings.ToLower(entity), id),
	}}}
}

// NotFoundError is returned when the entity addressed by a read, update or
// delete does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}
