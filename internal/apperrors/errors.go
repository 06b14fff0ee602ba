// Package apperrors defines the sentinel errors shared across the
// session, task, and suggestion layers. Callers branch with errors.Is.
package apperrors

import "errors"

var (
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned on login with an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when a profile update targets a missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrTaskNotFound is returned when an update targets a missing task.
	ErrTaskNotFound = errors.New("task not found")
	// ErrUnauthenticated is returned when an operation needs an active session and there is none.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrSuggestionUnavailable is returned when the suggestion service fails
	// on the propagating call path.
	ErrSuggestionUnavailable = errors.New("suggestion service unavailable")
	// ErrStorage wraps persistent store failures.
	ErrStorage = errors.New("storage failure")
)
