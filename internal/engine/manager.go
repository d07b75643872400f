package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// HistoryStore is the durability boundary for finished workouts. Load
// returns records newest-first; a session counts as recorded only once
// Append has returned nil.
type HistoryStore interface {
	LoadHistory(ctx context.Context) ([]models.HistoryRecord, error)
	AppendHistory(ctx context.Context, rec models.HistoryRecord) error
}

// Manager owns the single live session. Only one session may exist at a
// time; all mutations go through the manager's lock because the HTTP
// surface above it is concurrent.
type Manager struct {
	store HistoryStore
	log   *slog.Logger

	now   func() time.Time
	newID func() string

	mu       sync.Mutex
	current  *models.Session
	day      models.WorkoutDay
	planName string
}

// NewManager creates a Manager with the wall clock and UUID identities.
func NewManager(store HistoryStore, log *slog.Logger) *Manager {
	return &Manager{
		store: store,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Start initializes a live session for one day of a plan, carrying forward
// weights from history. Fails with ErrSessionActive if a session is live.
func (m *Manager) Start(ctx context.Context, plan *models.TrainingPlan, dayID string) (*models.Session, error) {
	day := plan.Day(dayID)
	if day == nil {
		return nil, fmt.Errorf("plan %q has no day %q", plan.ID, dayID)
	}

	history, err := m.store.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		return nil, ErrSessionActive
	}

	m.current = StartSession(plan.ID, day, history, m.now(), m.newID)
	m.day = *day
	m.planName = plan.Name
	m.log.Info("session started", "session_id", m.current.ID, "plan", plan.Name, "day", day.Name)
	return snapshot(m.current), nil
}

// Current returns a snapshot of the live session, or ErrNoSession.
func (m *Manager) Current() (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, ErrNoSession
	}
	return snapshot(m.current), nil
}

// Mutate runs one mutator operation against the live session.
func (m *Manager) Mutate(op func(*models.Session) error) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, ErrNoSession
	}
	if err := op(m.current); err != nil {
		return nil, err
	}
	return snapshot(m.current), nil
}

// Cancel discards the live session without recording anything.
func (m *Manager) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return ErrNoSession
	}
	m.log.Info("session cancelled", "session_id", m.current.ID)
	m.current = nil
	return nil
}

// Finish finalizes the live session and appends the record to the history
// store. If the append fails the session stays live and the error
// propagates, so the finished-but-unpersisted record is not silently lost.
func (m *Manager) Finish(ctx context.Context) (models.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return models.HistoryRecord{}, ErrNoSession
	}

	if IsEmpty(m.current) {
		m.log.Warn("finishing session with nothing logged", "session_id", m.current.ID)
	}

	rec := FinishSession(m.current, &m.day, m.planName, m.now(), m.newID)
	if err := m.store.AppendHistory(ctx, rec); err != nil {
		return rec, fmt.Errorf("appending history record: %w", err)
	}

	m.log.Info("session finished",
		"session_id", m.current.ID,
		"record_id", rec.ID,
		"duration_sec", rec.DurationSec,
		"total_volume", rec.TotalVolume,
	)
	m.current = nil
	return rec, nil
}

// snapshot deep-copies a session so callers can read it outside the lock.
func snapshot(s *models.Session) *models.Session {
	out := *s
	out.Sets = make(map[string][]models.SetLog, len(s.Sets))
	for id, sets := range s.Sets {
		copied := make([]models.SetLog, len(sets))
		copy(copied, sets)
		out.Sets[id] = copied
	}
	return &out
}
