package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/stempeluhr/internal/persistence"
	"github.com/example/stempeluhr/internal/persistence/memory"
)

func TestStore_CreateUser_Duplicate(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	if err := store.CreateUser(ctx, persistence.User{Login: "alice", PasswordHash: "first"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	err := store.CreateUser(ctx, persistence.User{Login: "alice", PasswordHash: "second"})
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate, got %v", err)
	}

	user, err := store.GetUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.PasswordHash != "first" {
		t.Errorf("Expected original hash to survive, got %q", user.PasswordHash)
	}
}

func TestStore_GetUser_NotFound(t *testing.T) {
	store := memory.NewStore()

	_, err := store.GetUser(context.Background(), "nobody")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestStore_InsertPunchGuarded_StaleCount(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	event := persistence.PunchEvent{
		OwnerLogin: "alice",
		RecordedAt: time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC),
		ClockID:    "Standard",
		Kind:       "in",
	}

	if _, err := store.InsertPunchGuarded(ctx, event, 0); err != nil {
		t.Fatalf("InsertPunchGuarded failed: %v", err)
	}

	_, err := store.InsertPunchGuarded(ctx, event, 0)
	if !errors.Is(err, persistence.ErrStaleCount) {
		t.Fatalf("Expected ErrStaleCount, got %v", err)
	}

	count, err := store.CountPunches(ctx, "alice")
	if err != nil {
		t.Fatalf("CountPunches failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected count to stay 1, got %d", count)
	}
}

func TestStore_ListPunches_TieBreakByInsertion(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	at := time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

	first := persistence.PunchEvent{OwnerLogin: "alice", RecordedAt: at, ClockID: "Standard", Kind: "in"}
	second := persistence.PunchEvent{OwnerLogin: "alice", RecordedAt: at, ClockID: "Werkstor", Kind: "out"}

	if _, err := store.InsertPunchGuarded(ctx, first, 0); err != nil {
		t.Fatalf("InsertPunchGuarded failed: %v", err)
	}
	if _, err := store.InsertPunchGuarded(ctx, second, 1); err != nil {
		t.Fatalf("InsertPunchGuarded failed: %v", err)
	}

	ascending, err := store.ListPunches(ctx, "alice", persistence.OrderAscending)
	if err != nil {
		t.Fatalf("ListPunches failed: %v", err)
	}
	if len(ascending) != 2 || ascending[0].ClockID != "Standard" {
		t.Errorf("Expected insertion order on equal timestamps, got %+v", ascending)
	}

	descending, err := store.ListPunches(ctx, "alice", persistence.OrderDescending)
	if err != nil {
		t.Fatalf("ListPunches failed: %v", err)
	}
	if descending[0].ClockID != "Werkstor" {
		t.Errorf("Expected newest insertion first, got %+v", descending)
	}
}

func TestStore_ListPunches_ReturnsCopies(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	note := "original"
	event := persistence.PunchEvent{
		OwnerLogin: "alice",
		RecordedAt: time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC),
		ClockID:    "Standard",
		Kind:       "in",
		Note:       &note,
	}
	if _, err := store.InsertPunchGuarded(ctx, event, 0); err != nil {
		t.Fatalf("InsertPunchGuarded failed: %v", err)
	}

	listed, err := store.ListPunches(ctx, "alice", persistence.OrderAscending)
	if err != nil {
		t.Fatalf("ListPunches failed: %v", err)
	}
	*listed[0].Note = "mutated"

	again, err := store.ListPunches(ctx, "alice", persistence.OrderAscending)
	if err != nil {
		t.Fatalf("ListPunches failed: %v", err)
	}
	if *again[0].Note != "original" {
		t.Errorf("Expected stored note to be unaffected by caller mutation, got %q", *again[0].Note)
	}
}
