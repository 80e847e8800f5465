package application

import "time"

// PunchEvent is one immutable clock-in/out record as seen by callers of the
// ledger service.
type PunchEvent struct {
	OwnerLogin string
	RecordedAt time.Time
	ClockID    string
	Kind       string
	Note       *string
}

// Order selects the direction of a ledger listing.
type Order int

const (
	// OrderAscending lists punches oldest first.
	OrderAscending Order = iota
	// OrderDescending lists punches newest first.
	OrderDescending
)

// PunchInput captures caller provided fields for a guarded append. The
// timestamp is deliberately absent: the ledger assigns it at insertion time.
type PunchInput struct {
	ClockID string
	Kind    string
	Note    *string
}
