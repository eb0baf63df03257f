package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrNotReady         = errors.New("questions are not loaded")
	ErrNotStarted       = errors.New("session has not started")
	ErrMissingName      = errors.New("name is required")
	ErrMissingRollID    = errors.New("roll number is required")
)

// ServiceError is an error reported by the Scoring Service in an {"error": ...} body.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// ValidationError blocks Start when the student's details are incomplete.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LoadError is terminal: a session whose questions failed to load cannot continue.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return "load questions: " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SubmitError leaves the session retryable.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return "submit answers: " + e.Err.Error()
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
