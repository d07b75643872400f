package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
)

// PlanStore is the read side of plan storage that analytics consumers
// (the dashboard and MCP tools) need.
type PlanStore interface {
	ListPlans(ctx context.Context) ([]models.TrainingPlan, error)
}

// Service answers analytics queries from the full history snapshot. It is
// stateless: every query reloads and recomputes, which is cheap at
// personal-tracker data volumes.
type Service struct {
	history engine.HistoryStore
	plans   PlanStore
	now     func() time.Time
}

// NewService creates a Service using the wall clock for weekly bucketing.
func NewService(history engine.HistoryStore, plans PlanStore) *Service {
	return &Service{history: history, plans: plans, now: time.Now}
}

// Progression returns the per-workout series for one exercise, oldest first.
func (s *Service) Progression(ctx context.Context, exerciseName string) ([]ProgressionPoint, error) {
	history, err := s.history.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return Progression(history, exerciseName), nil
}

// WeeklyActivity returns per-week workout counts and volume for the last
// `weeks` 7-day windows ending now.
func (s *Service) WeeklyActivity(ctx context.Context, weeks int) ([]WeeklyBucket, error) {
	history, err := s.history.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return WeeklyActivity(history, s.now(), weeks), nil
}

// Summary returns the all-time aggregate totals.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	history, err := s.history.LoadHistory(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("loading history: %w", err)
	}
	return Summarize(history), nil
}

// History returns up to limit records, newest first (all records if
// limit <= 0).
func (s *Service) History(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	history, err := s.history.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}

// Plans returns all training plans.
func (s *Service) Plans(ctx context.Context) ([]models.TrainingPlan, error) {
	return s.plans.ListPlans(ctx)
}
