// Package apperrors defines the error categories shared by services,
// repositories, and controllers. Callers classify errors with errors.Is
// and wrap sentinels with fmt.Errorf("%w: ...") to add context.
package apperrors

import "errors"

var (
	// ErrValidation marks missing or malformed input supplied by the caller.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a uniqueness violation, e.g. a taken username.
	ErrConflict = errors.New("already exists")

	// ErrAuth marks a failed login or a missing/invalid/expired credential.
	ErrAuth = errors.New("authentication failed")

	// ErrForbidden marks a valid identity with insufficient rights.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotImplemented marks a feature unsupported by the current
	// deployment configuration, e.g. file uploads on an ephemeral
	// filesystem.
	ErrNotImplemented = errors.New("not implemented")

	// ErrStorage marks an underlying database failure. The caller may
	// retry the whole request; the service does not retry on its own.
	ErrStorage = errors.New("storage failure")
)
