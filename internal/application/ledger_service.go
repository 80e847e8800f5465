package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/example/stempeluhr/internal/persistence"
)

// LedgerService exposes the append-only punch ledger: ordered retrieval and
// the optimistic-concurrency guarded append. Events are immutable once
// appended; no update or delete operation exists.
type LedgerService struct {
	punches persistence.PunchRepository
	now     func() time.Time
	logger  *slog.Logger

	mu     sync.Mutex
	owners map[string]*sync.Mutex
}

// NewLedgerService constructs a LedgerService with the provided dependencies.
func NewLedgerService(punches persistence.PunchRepository, now func() time.Time, logger *slog.Logger) *LedgerService {
	if now == nil {
		now = time.Now
	}
	return &LedgerService{
		punches: punches,
		now:     now,
		logger:  defaultLogger(logger),
		owners:  make(map[string]*sync.Mutex),
	}
}

func (s *LedgerService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "LedgerService", operation, attrs...)
}

// List returns the owner's full punch history, materialized, ordered by
// RecordedAt with insertion order breaking ties.
func (s *LedgerService) List(ctx context.Context, ownerLogin string, order Order) ([]PunchEvent, error) {
	stored, err := s.punches.ListPunches(ctx, ownerLogin, toPersistenceOrder(order))
	if err != nil {
		s.loggerWith(ctx, "List", "owner", ownerLogin).ErrorContext(ctx, "failed to list punches", "error", err)
		return nil, err
	}

	events := make([]PunchEvent, 0, len(stored))
	for _, event := range stored {
		events = append(events, toApplicationEvent(event))
	}
	return events, nil
}

// AppendGuarded records a new punch for the owner if and only if the ledger
// still holds exactly expectedCount events. The count check and the insert
// are serialized per owner, so of any set of concurrent appends computed
// against the same observed count at most one can succeed; the rest receive
// ErrConcurrencyConflict and write nothing. Appends for different owners do
// not contend. The service never retries: conflict recovery belongs to the
// caller.
func (s *LedgerService) AppendGuarded(ctx context.Context, ownerLogin string, input PunchInput, expectedCount int) (result PunchEvent, err error) {
	logger := s.loggerWith(ctx, "AppendGuarded",
		"owner", ownerLogin,
		"clock", input.ClockID,
		"expected_count", expectedCount,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "guarded append failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "punch recorded", "recorded_at", result.RecordedAt)
	}()

	lock := s.ownerLock(ownerLogin)
	lock.Lock()
	defer lock.Unlock()

	event := persistence.PunchEvent{
		OwnerLogin: ownerLogin,
		RecordedAt: s.now().UTC().Truncate(time.Second),
		ClockID:    input.ClockID,
		Kind:       input.Kind,
		Note:       input.Note,
	}

	stored, insertErr := s.punches.InsertPunchGuarded(ctx, event, expectedCount)
	if insertErr != nil {
		if errors.Is(insertErr, persistence.ErrStaleCount) {
			err = ErrConcurrencyConflict
			return
		}
		err = insertErr
		return
	}

	result = toApplicationEvent(stored)
	return
}

// ownerLock returns the mutex serializing guarded appends for one owner,
// creating it on first use. Locks are never removed; the owner set is the
// provisioned user set and stays small.
func (s *LedgerService) ownerLock(ownerLogin string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.owners[ownerLogin]
	if !ok {
		lock = &sync.Mutex{}
		s.owners[ownerLogin] = lock
	}
	return lock
}

func toPersistenceOrder(order Order) persistence.Order {
	if order == OrderDescending {
		return persistence.OrderDescending
	}
	return persistence.OrderAscending
}

func toApplicationEvent(event persistence.PunchEvent) PunchEvent {
	var note *string
	if event.Note != nil {
		value := *event.Note
		note = &value
	}
	return PunchEvent{
		OwnerLogin: event.OwnerLogin,
		RecordedAt: event.RecordedAt,
		ClockID:    event.ClockID,
		Kind:       event.Kind,
		Note:       note,
	}
}
