package session

import (
	"errors"
	"fmt"
)

var (
	ErrNotInitialized     = errors.New("session manager not initialized")
	ErrAlreadyInitialized = errors.New("session manager already initialized")
	ErrInvalidCredentials = errors.New("email and password are required")

	// ErrPersistence matches every *PersistenceError.
	ErrPersistence = errors.New("session persistence failed")
	// ErrRejected matches every *RejectedError.
	ErrRejected = errors.New("authentication rejected")
)

// PersistenceError reports a failed read, write or delete of the durable slot.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("session persistence error: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// RejectedError carries the backend's reason for refusing a login or signup.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return "authentication rejected: " + e.Reason
}

func (e *RejectedError) Is(target error) bool { return target == ErrRejected }
