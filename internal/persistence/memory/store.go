package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/stempeluhr/internal/persistence"
)

// Store provides an in-memory persistence layer implementation. It backs the
// service tests and serves as a storage fallback when no database file is
// wanted. Punches are held per owner in insertion order, which doubles as the
// tie-break for equal timestamps.
type Store struct {
	mu      sync.RWMutex
	users   map[string]persistence.User
	punches map[string][]persistence.PunchEvent
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:   make(map[string]persistence.User),
		punches: make(map[string][]persistence.PunchEvent),
	}
}

// --- UserRepository implementation ---

// CreateUser stores a new credential record.
func (s *Store) CreateUser(ctx context.Context, user persistence.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Login]; ok {
		return persistence.ErrDuplicate
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	s.users[user.Login] = user
	return nil
}

// GetUser retrieves a credential record by login.
func (s *Store) GetUser(ctx context.Context, login string) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[login]
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}

	return user, nil
}

// --- PunchRepository implementation ---

// ListPunches returns the owner's punches ordered by RecordedAt, ties broken
// by insertion order.
func (s *Store) ListPunches(ctx context.Context, ownerLogin string, order persistence.Order) ([]persistence.PunchEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.punches[ownerLogin]
	punches := make([]persistence.PunchEvent, 0, len(stored))
	for _, event := range stored {
		punches = append(punches, cloneEvent(event))
	}

	sort.SliceStable(punches, func(i, j int) bool {
		return punches[i].RecordedAt.Before(punches[j].RecordedAt)
	})

	if order == persistence.OrderDescending {
		for i, j := 0, len(punches)-1; i < j; i, j = i+1, j-1 {
			punches[i], punches[j] = punches[j], punches[i]
		}
	}

	if len(punches) == 0 {
		return nil, nil
	}
	return punches, nil
}

// CountPunches returns the number of punches stored for the owner.
func (s *Store) CountPunches(ctx context.Context, ownerLogin string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.punches[ownerLogin]), nil
}

// InsertPunchGuarded compares the owner's punch count against expectedCount
// under the store lock and appends the event only on a match.
func (s *Store) InsertPunchGuarded(ctx context.Context, event persistence.PunchEvent, expectedCount int) (persistence.PunchEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.punches[event.OwnerLogin]) != expectedCount {
		return persistence.PunchEvent{}, persistence.ErrStaleCount
	}

	event.RecordedAt = event.RecordedAt.UTC().Truncate(time.Second)
	s.punches[event.OwnerLogin] = append(s.punches[event.OwnerLogin], cloneEvent(event))
	return event, nil
}

func cloneEvent(event persistence.PunchEvent) persistence.PunchEvent {
	if event.Note != nil {
		note := *event.Note
		event.Note = &note
	}
	return event
}
