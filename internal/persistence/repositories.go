package persistence

import "context"

// UserRepository exposes the credential records keyed by login. Users are
// never updated or deleted within this system.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, login string) (User, error)
}

// PunchRepository stores the append-only punch ledger.
type PunchRepository interface {
	// ListPunches returns every punch for the owner, totally ordered by
	// RecordedAt with ties broken by insertion order.
	ListPunches(ctx context.Context, ownerLogin string, order Order) ([]PunchEvent, error)

	// CountPunches returns the number of punches stored for the owner.
	CountPunches(ctx context.Context, ownerLogin string) (int, error)

	// InsertPunchGuarded atomically compares the owner's current punch count
	// against expectedCount and inserts the event only on a match. A mismatch
	// yields ErrStaleCount and leaves the ledger untouched. Callers must
	// additionally serialize guarded inserts per owner; the repository only
	// guarantees the count check and the insert happen in one transaction.
	InsertPunchGuarded(ctx context.Context, event PunchEvent, expectedCount int) (PunchEvent, error)
}
