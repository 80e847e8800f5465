package sqlite

import (
	"context"
	"fmt"
)

// Storage bundles the SQLite-backed repositories behind a single handle that
// owns the connection pool.
type Storage struct {
	pool    *ConnectionPool
	users   *UserRepository
	punches *PunchRepository
}

// Open connects to the SQLite database at dsn and returns a Storage handle.
// The schema is not created until Migrate is called.
func Open(dsn string) (*Storage, error) {
	pool, err := NewConnectionPool(dsn)
	if err != nil {
		return nil, err
	}

	return &Storage{
		pool:    pool,
		users:   NewUserRepository(pool),
		punches: NewPunchRepository(pool),
	}, nil
}

// Close releases the underlying connection pool.
func (s *Storage) Close() error {
	return s.pool.Close()
}

// Users returns the credential repository.
func (s *Storage) Users() *UserRepository {
	return s.users
}

// Punches returns the punch ledger repository.
func (s *Storage) Punches() *PunchRepository {
	return s.punches
}

// Migrate creates the two relations of the time-clock schema if they do not
// exist yet: users keyed by login, and the append-only punch log with an
// index supporting per-owner ordered retrieval and counting.
func (s *Storage) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			login         TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			created_at    TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS punches (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_login TEXT NOT NULL REFERENCES users(login),
			recorded_at TEXT NOT NULL,
			clock_id    TEXT NOT NULL,
			kind        TEXT NOT NULL,
			note        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_punches_owner_recorded
			ON punches(owner_login, recorded_at, id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.DB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return nil
}
