package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when an insert collides with an existing
	// primary key.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrStaleCount is returned by the guarded append when the caller's
	// expected event count no longer matches the stored count. No write
	// happens in that case.
	ErrStaleCount = errors.New("persistence: stale event count")
)
