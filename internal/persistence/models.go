package persistence

import "time"

// TimestampLayout is the fixed textual form punch timestamps are stored in:
// UTC, second precision, trailing Z.
const TimestampLayout = "2006-01-02T15:04:05Z"

// User represents a provisioned account in the time-clock domain. The login
// is the primary key; the password hash is an opaque PHC-formatted string.
type User struct {
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}

// PunchEvent represents one immutable clock-in/out record. RecordedAt is
// assigned by the server at insertion time, never by the caller.
type PunchEvent struct {
	OwnerLogin string
	RecordedAt time.Time
	ClockID    string
	Kind       string
	Note       *string
}

// Order selects the direction of a punch listing.
type Order int

const (
	// OrderAscending lists punches oldest first.
	OrderAscending Order = iota
	// OrderDescending lists punches newest first.
	OrderDescending
)
