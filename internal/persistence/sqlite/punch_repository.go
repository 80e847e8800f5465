package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/stempeluhr/internal/persistence"
)

// PunchRepository implements persistence.PunchRepository using SQLite.
type PunchRepository struct {
	pool *ConnectionPool
}

// NewPunchRepository creates a new SQLite punch repository.
func NewPunchRepository(pool *ConnectionPool) *PunchRepository {
	return &PunchRepository{pool: pool}
}

// ListPunches returns all punches for the owner ordered by recorded_at with
// the rowid breaking ties, so equal-second punches keep insertion order.
func (r *PunchRepository) ListPunches(ctx context.Context, ownerLogin string, order persistence.Order) ([]persistence.PunchEvent, error) {
	direction := "ASC"
	if order == persistence.OrderDescending {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT owner_login, recorded_at, clock_id, kind, note
		FROM punches
		WHERE owner_login = ?
		ORDER BY recorded_at %s, id %s
	`, direction, direction)

	rows, err := r.pool.DB().QueryContext(ctx, query, ownerLogin)
	if err != nil {
		return nil, fmt.Errorf("failed to query punches: %w", err)
	}
	defer rows.Close()

	var punches []persistence.PunchEvent

	for rows.Next() {
		event, err := scanPunch(rows.Scan)
		if err != nil {
			return nil, err
		}
		punches = append(punches, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punches: %w", err)
	}

	return punches, nil
}

// CountPunches returns the number of punches stored for the owner.
func (r *PunchRepository) CountPunches(ctx context.Context, ownerLogin string) (int, error) {
	var count int
	err := r.pool.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM punches WHERE owner_login = ?`, ownerLogin,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count punches: %w", err)
	}
	return count, nil
}

// InsertPunchGuarded runs the count check and the insert inside a single
// transaction. On a count mismatch it returns persistence.ErrStaleCount and
// writes nothing.
func (r *PunchRepository) InsertPunchGuarded(ctx context.Context, event persistence.PunchEvent, expectedCount int) (persistence.PunchEvent, error) {
	stored := event
	stored.RecordedAt = event.RecordedAt.UTC().Truncate(time.Second)

	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		var actualCount int
		err := tx.QueryRow(
			`SELECT COUNT(*) FROM punches WHERE owner_login = ?`, stored.OwnerLogin,
		).Scan(&actualCount)
		if err != nil {
			return fmt.Errorf("failed to count punches: %w", err)
		}

		if actualCount != expectedCount {
			return persistence.ErrStaleCount
		}

		_, err = tx.Exec(`
			INSERT INTO punches (owner_login, recorded_at, clock_id, kind, note)
			VALUES (?, ?, ?, ?, ?)`,
			stored.OwnerLogin,
			stored.RecordedAt.Format(persistence.TimestampLayout),
			stored.ClockID,
			stored.Kind,
			noteValue(stored.Note),
		)
		if err != nil {
			return fmt.Errorf("failed to insert punch: %w", err)
		}

		return nil
	})
	if err != nil {
		return persistence.PunchEvent{}, err
	}

	return stored, nil
}

// scanPunch maps one punches row onto a PunchEvent.
func scanPunch(scan func(dest ...any) error) (persistence.PunchEvent, error) {
	var event persistence.PunchEvent
	var recordedAtStr string
	var note sql.NullString

	if err := scan(&event.OwnerLogin, &recordedAtStr, &event.ClockID, &event.Kind, &note); err != nil {
		return persistence.PunchEvent{}, fmt.Errorf("failed to scan punch: %w", err)
	}

	recordedAt, err := time.Parse(persistence.TimestampLayout, recordedAtStr)
	if err != nil {
		return persistence.PunchEvent{}, fmt.Errorf("failed to parse recorded_at: %w", err)
	}
	event.RecordedAt = recordedAt

	if note.Valid {
		value := note.String
		event.Note = &value
	}

	return event, nil
}

func noteValue(note *string) any {
	if note == nil {
		return nil
	}
	return *note
}
