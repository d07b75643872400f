package engine

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// fakeStore is an in-memory HistoryStore, newest record first.
type fakeStore struct {
	records   []models.HistoryRecord
	appendErr error
}

func (f *fakeStore) LoadHistory(ctx context.Context) ([]models.HistoryRecord, error) {
	return f.records, nil
}

func (f *fakeStore) AppendHistory(ctx context.Context, rec models.HistoryRecord) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.records = append([]models.HistoryRecord{rec}, f.records...)
	return nil
}

func testPlan() *models.TrainingPlan {
	return &models.TrainingPlan{
		ID:   "plan-1",
		Name: "Starter Plan",
		Days: []models.WorkoutDay{*benchDay()},
	}
}

func newTestManager(store HistoryStore) *Manager {
	m := NewManager(store, slog.Default())
	m.newID = sequentialIDs()
	return m
}

// TestManagerSingleSession verifies the one-live-session discipline.
func TestManagerSingleSession(t *testing.T) {
	m := newTestManager(&fakeStore{})
	ctx := context.Background()

	if _, err := m.Start(ctx, testPlan(), "day-1"); err != nil {
		t.Fatalf("first start: %v", err)
	}

	_, err := m.Start(ctx, testPlan(), "day-1")
	if !errors.Is(err, ErrSessionActive) {
		t.Errorf("second start error = %v, want ErrSessionActive", err)
	}

	if err := m.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := m.Start(ctx, testPlan(), "day-1"); err != nil {
		t.Errorf("start after cancel: %v", err)
	}
}

// TestManagerUnknownDay verifies starting an undefined plan day fails.
func TestManagerUnknownDay(t *testing.T) {
	m := newTestManager(&fakeStore{})
	if _, err := m.Start(context.Background(), testPlan(), "day-404"); err == nil {
		t.Error("expected error for unknown day id")
	}
}

// TestManagerNoSession verifies operations without a live session fail
// with ErrNoSession.
func TestManagerNoSession(t *testing.T) {
	m := newTestManager(&fakeStore{})

	if _, err := m.Current(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Current error = %v, want ErrNoSession", err)
	}
	if err := m.Cancel(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Cancel error = %v, want ErrNoSession", err)
	}
	if _, err := m.Finish(context.Background()); !errors.Is(err, ErrNoSession) {
		t.Errorf("Finish error = %v, want ErrNoSession", err)
	}
	if _, err := m.Mutate(func(*models.Session) error { return nil }); !errors.Is(err, ErrNoSession) {
		t.Errorf("Mutate error = %v, want ErrNoSession", err)
	}
}

// TestManagerFinishAppends verifies the happy path: finish produces a
// record, appends it, and frees the session slot.
func TestManagerFinishAppends(t *testing.T) {
	store := &fakeStore{}
	m := newTestManager(store)
	start := time.Date(2025, 8, 25, 18, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return start }
	ctx := context.Background()

	if _, err := m.Start(ctx, testPlan(), "day-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Mutate(func(s *models.Session) error {
		if err := SetWeight(s, "ex-bench", 0, 60); err != nil {
			return err
		}
		if err := SetReps(s, "ex-bench", 0, 10); err != nil {
			return err
		}
		return SetCompleted(s, "ex-bench", 0, true)
	}); err != nil {
		t.Fatal(err)
	}

	m.now = func() time.Time { return start.Add(125 * time.Second) }
	rec, err := m.Finish(ctx)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}

	if rec.DurationSec != 125 || rec.TotalVolume != 600 {
		t.Errorf("record = {duration %d, volume %v}, want {125, 600}", rec.DurationSec, rec.TotalVolume)
	}
	if len(store.records) != 1 {
		t.Fatalf("store records = %d, want 1", len(store.records))
	}
	if store.records[0].ID != rec.ID {
		t.Errorf("stored record id = %q, want %q", store.records[0].ID, rec.ID)
	}
	if _, err := m.Current(); !errors.Is(err, ErrNoSession) {
		t.Error("session should be cleared after successful finish")
	}
}

// TestManagerFinishStoreFailure verifies that a failed append propagates,
// returns the unpersisted record, and keeps the session live for retry.
func TestManagerFinishStoreFailure(t *testing.T) {
	store := &fakeStore{appendErr: errors.New("disk full")}
	m := newTestManager(store)
	ctx := context.Background()

	if _, err := m.Start(ctx, testPlan(), "day-1"); err != nil {
		t.Fatal(err)
	}

	rec, err := m.Finish(ctx)
	if err == nil {
		t.Fatal("expected append error to propagate")
	}
	if rec.ID == "" {
		t.Error("unpersisted record should still be returned to the caller")
	}
	if _, err := m.Current(); err != nil {
		t.Error("session should stay live after a failed append")
	}

	// Retry succeeds once the store recovers.
	store.appendErr = nil
	if _, err := m.Finish(ctx); err != nil {
		t.Fatalf("retry finish: %v", err)
	}
	if len(store.records) != 1 {
		t.Errorf("store records = %d, want 1", len(store.records))
	}
}

// TestManagerCarryForwardFromStore verifies Start reads history through
// the store boundary.
func TestManagerCarryForwardFromStore(t *testing.T) {
	store := &fakeStore{records: []models.HistoryRecord{
		record(time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC), "Bench Press",
			models.LoggedSet{Weight: 100, Reps: 8, Completed: true},
		),
	}}
	m := newTestManager(store)

	s, err := m.Start(context.Background(), testPlan(), "day-1")
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Sets["ex-bench"][0].Weight; got != 100 {
		t.Errorf("carried weight = %v, want 100", got)
	}
}

// TestManagerSnapshotIsolation verifies callers cannot mutate the live
// session through a returned snapshot.
func TestManagerSnapshotIsolation(t *testing.T) {
	m := newTestManager(&fakeStore{})
	s, err := m.Start(context.Background(), testPlan(), "day-1")
	if err != nil {
		t.Fatal(err)
	}

	s.Sets["ex-bench"][0].Weight = 999

	current, err := m.Current()
	if err != nil {
		t.Fatal(err)
	}
	if got := current.Sets["ex-bench"][0].Weight; got == 999 {
		t.Error("mutating a snapshot leaked into the live session")
	}
}
