package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrUnauthorized is returned when a token is missing, invalid or lacks rights.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnavailable is returned while the backend circuit breaker is open.
	ErrUnavailable = errors.New("backend unavailable")
)

// Error is a failure raised by a repository operation. It is propagated
// unchanged through the core packages.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("repository %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap tags err with the failing operation. A nil err stays nil and an
// error that is already an *Error is returned as is.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var repoErr *Error
	if errors.As(err, &repoErr) {
		return err
	}
	return &Error{Op: op, Err: err}
}
