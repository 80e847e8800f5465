package application

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown login or a mismatched
	// password. Callers must surface both cases identically.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrDuplicateLogin is returned when provisioning collides with an
	// existing login.
	ErrDuplicateLogin = errors.New("application: login already exists")
	// ErrConcurrencyConflict is returned by the guarded append when the
	// caller's expected count no longer matches the ledger. It is a
	// recoverable condition: re-read and retry, or surface a conflict.
	ErrConcurrencyConflict = errors.New("application: concurrent punch recorded")
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
)
