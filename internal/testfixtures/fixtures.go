package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/stempeluhr/internal/persistence"
)

var (
	userCounter  uint64
	punchCounter uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// UserOption configures a generated user fixture.
type UserOption func(*persistence.User)

// WithLogin overrides the fixture login.
func WithLogin(login string) UserOption {
	return func(user *persistence.User) {
		user.Login = login
	}
}

// WithPasswordHash overrides the fixture password hash.
func WithPasswordHash(hash string) UserOption {
	return func(user *persistence.User) {
		user.PasswordHash = hash
	}
}

// NewUserFixture returns a deterministic user record with optional overrides.
// The password hash is an opaque placeholder; tests exercising real
// verification must provision through the credential service instead.
func NewUserFixture(opts ...UserOption) persistence.User {
	idx := atomic.AddUint64(&userCounter, 1)
	user := persistence.User{
		Login:        fmt.Sprintf("user-%03d", idx),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		CreatedAt:    referenceTime.Add(time.Duration(idx) * time.Minute),
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// PunchOption configures a generated punch fixture.
type PunchOption func(*persistence.PunchEvent)

// WithOwner overrides the fixture owner login.
func WithOwner(login string) PunchOption {
	return func(event *persistence.PunchEvent) {
		event.OwnerLogin = login
	}
}

// WithRecordedAt overrides the fixture timestamp.
func WithRecordedAt(t time.Time) PunchOption {
	return func(event *persistence.PunchEvent) {
		event.RecordedAt = t
	}
}

// WithKind overrides the fixture punch kind.
func WithKind(kind string) PunchOption {
	return func(event *persistence.PunchEvent) {
		event.Kind = kind
	}
}

// WithNote sets the fixture note.
func WithNote(note string) PunchOption {
	return func(event *persistence.PunchEvent) {
		event.Note = &note
	}
}

// NewPunchFixture returns a deterministic punch record with optional
// overrides. Successive fixtures advance one minute apart.
func NewPunchFixture(opts ...PunchOption) persistence.PunchEvent {
	idx := atomic.AddUint64(&punchCounter, 1)
	kind := "in"
	if idx%2 == 0 {
		kind = "out"
	}
	event := persistence.PunchEvent{
		OwnerLogin: "user-000",
		RecordedAt: referenceTime.Add(time.Duration(idx) * time.Minute),
		ClockID:    "Standard",
		Kind:       kind,
	}
	for _, opt := range opts {
		opt(&event)
	}
	return event
}
