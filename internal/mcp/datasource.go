package mcp

import (
	"context"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
)

// DataSource abstracts the analytics layer for MCP tools. Both
// *analytics.Service (local) and HTTPClient (remote via REST API)
// satisfy this interface.
type DataSource interface {
	Progression(ctx context.Context, exerciseName string) ([]analytics.ProgressionPoint, error)
	WeeklyActivity(ctx context.Context, weeks int) ([]analytics.WeeklyBucket, error)
	Summary(ctx context.Context) (analytics.Summary, error)
	History(ctx context.Context, limit int) ([]models.HistoryRecord, error)
	Plans(ctx context.Context) ([]models.TrainingPlan, error)
}

// Compile-time check: *analytics.Service satisfies DataSource.
var _ DataSource = (*analytics.Service)(nil)
