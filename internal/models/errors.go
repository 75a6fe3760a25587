package models

import (
	"errors"
	"fmt"
)

// Storage-level sentinels shared by all repository drivers
var (
	// ErrNotFound is returned when a requested entity is not found
	ErrNotFound = errors.New("entity not found")
	// ErrDuplicateName is returned when a unique name is already taken
	ErrDuplicateName = errors.New("name already exists")
)

// ErrorKind classifies a domain failure so transports can map it to a
// status code without matching on message text
type ErrorKind int

const (
	ErrorKindInternal ErrorKind = iota
	ErrorKindValidation
	ErrorKindConflict
	ErrorKindNotFound
	ErrorKindAllocation
)

// Error is a domain error carrying a kind and a human-readable message.
// The message text is part of the external contract; consumers match on it.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewValidationError reports a malformed, missing or out-of-range field
func NewValidationError(format string, args ...any) *Error {
	return newError(ErrorKindValidation, format, args...)
}

// NewConflictError reports a uniqueness violation
func NewConflictError(format string, args ...any) *Error {
	return newError(ErrorKindConflict, format, args...)
}

// NewNotFoundError reports an unknown id or name
func NewNotFoundError(format string, args ...any) *Error {
	return newError(ErrorKindNotFound, format, args...)
}

// NewAllocationError reports that no room satisfies the constraints
func NewAllocationError(format string, args ...any) *Error {
	return newError(ErrorKindAllocation, format, args...)
}

// KindOf returns the kind of a domain error, or ErrorKindInternal for any
// other error
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ErrorKindInternal
}
