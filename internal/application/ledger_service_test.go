package application_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/stempeluhr/internal/application"
	"github.com/example/stempeluhr/internal/persistence/memory"
	"github.com/example/stempeluhr/internal/testfixtures"
)

func newLedgerService(t *testing.T) (*application.LedgerService, *testfixtures.Clock) {
	t.Helper()
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	return application.NewLedgerService(memory.NewStore(), clock.NowFunc(), nil), clock
}

func note(s string) *string { return &s }

func TestLedgerService_AppendGuarded_Succeeds(t *testing.T) {
	t.Parallel()

	service, clock := newLedgerService(t)
	ctx := context.Background()

	event, err := service.AppendGuarded(ctx, "alice", application.PunchInput{
		ClockID: "Standard",
		Kind:    "in",
		Note:    note("Montag früh"),
	}, 0)
	require.NoError(t, err)

	assert.Equal(t, "alice", event.OwnerLogin)
	assert.Equal(t, "Standard", event.ClockID)
	assert.Equal(t, "in", event.Kind)
	require.NotNil(t, event.Note)
	assert.Equal(t, "Montag früh", *event.Note)
	assert.Equal(t, clock.Now().UTC().Truncate(time.Second), event.RecordedAt)

	events, err := service.List(ctx, "alice", application.OrderAscending)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestLedgerService_AppendGuarded_StaleCount(t *testing.T) {
	t.Parallel()

	service, clock := newLedgerService(t)
	ctx := context.Background()

	_, err := service.AppendGuarded(ctx, "alice", application.PunchInput{ClockID: "Standard", Kind: "in"}, 0)
	require.NoError(t, err)
	clock.Advance(time.Minute)

	before, err := service.List(ctx, "alice", application.OrderAscending)
	require.NoError(t, err)

	_, err = service.AppendGuarded(ctx, "alice", application.PunchInput{ClockID: "Standard", Kind: "out"}, 0)
	assert.ErrorIs(t, err, application.ErrConcurrencyConflict)

	// Idempotent failure: count and content are unchanged.
	after, err := service.List(ctx, "alice", application.OrderAscending)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLedgerService_List_Ordering(t *testing.T) {
	t.Parallel()

	service, clock := newLedgerService(t)
	ctx := context.Background()

	_, err := service.AppendGuarded(ctx, "alice", application.PunchInput{ClockID: "Standard", Kind: "in"}, 0)
	require.NoError(t, err)
	clock.Advance(time.Hour)
	_, err = service.AppendGuarded(ctx, "alice", application.PunchInput{ClockID: "Standard", Kind: "out"}, 1)
	require.NoError(t, err)
	// Same second as the previous punch: insertion order must break the tie.
	_, err = service.AppendGuarded(ctx, "alice", application.PunchInput{ClockID: "Werkstor", Kind: "in"}, 2)
	require.NoError(t, err)

	ascending, err := service.List(ctx, "alice", application.OrderAscending)
	require.NoError(t, err)
	require.Len(t, ascending, 3)
	assert.Equal(t, []string{"in", "out", "in"}, kinds(ascending))
	for i := 1; i < len(ascending); i++ {
		assert.False(t, ascending[i].RecordedAt.Before(ascending[i-1].RecordedAt),
			"recorded_at must be non-decreasing")
	}

	descending, err := service.List(ctx, "alice", application.OrderDescending)
	require.NoError(t, err)
	require.Len(t, descending, 3)
	assert.Equal(t, "Werkstor", descending[0].ClockID, "newest insertion first on equal timestamps")
	assert.Equal(t, []string{"in", "out", "in"}, kinds(descending))
}

func TestLedgerService_AppendGuarded_ConcurrentSameOwner(t *testing.T) {
	t.Parallel()

	service, _ := newLedgerService(t)
	ctx := context.Background()

	const attempts = 8

	start := make(chan struct{})
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := service.AppendGuarded(ctx, "alice", application.PunchInput{ClockID: "Standard", Kind: "in"}, 0)
			errs <- err
		}()
	}

	close(start)
	wg.Wait()
	close(errs)

	successes, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, application.ErrConcurrencyConflict)
			conflicts++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	events, err := service.List(ctx, "alice", application.OrderAscending)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestLedgerService_AppendGuarded_ConcurrentDistinctOwners(t *testing.T) {
	t.Parallel()

	service, _ := newLedgerService(t)
	ctx := context.Background()

	owners := []string{"alice", "bob", "carol", "dave", "erin", "frank"}

	start := make(chan struct{})
	errs := make(chan error, len(owners))

	var wg sync.WaitGroup
	for _, owner := range owners {
		wg.Add(1)
		go func(owner string) {
			defer wg.Done()
			<-start
			_, err := service.AppendGuarded(ctx, owner, application.PunchInput{ClockID: "Standard", Kind: "in"}, 0)
			errs <- err
		}(owner)
	}

	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	for _, owner := range owners {
		events, err := service.List(ctx, owner, application.OrderAscending)
		require.NoError(t, err)
		assert.Len(t, events, 1, "owner %s", owner)
	}
}

func TestLedgerService_Scenario(t *testing.T) {
	t.Parallel()

	service, clock := newLedgerService(t)
	ctx := context.Background()

	events, err := service.List(ctx, "alice", application.OrderAscending)
	require.NoError(t, err)
	assert.Empty(t, events)

	_, err = service.AppendGuarded(ctx, "alice", application.PunchInput{ClockID: "Standard", Kind: "in"}, 0)
	require.NoError(t, err)

	clock.Advance(time.Minute)

	_, err = service.AppendGuarded(ctx, "alice", application.PunchInput{ClockID: "Standard", Kind: "out"}, 0)
	assert.ErrorIs(t, err, application.ErrConcurrencyConflict)

	_, err = service.AppendGuarded(ctx, "alice", application.PunchInput{ClockID: "Standard", Kind: "out"}, 1)
	require.NoError(t, err)

	events, err = service.List(ctx, "alice", application.OrderAscending)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func kinds(events []application.PunchEvent) []string {
	result := make([]string, 0, len(events))
	for _, event := range events {
		result = append(result, event.Kind)
	}
	return result
}
