package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) recentHistory(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	records, err := h.ds.History(ctx, 0)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -14)
	recent := make([]models.HistoryRecord, 0, len(records))
	for _, rec := range records {
		if rec.CompletedAt.After(cutoff) {
			recent = append(recent, rec)
		}
	}

	return jsonContents(req.Params.URI, recent)
}

func (h *handlers) weeklySummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	buckets, err := h.ds.WeeklyActivity(ctx, 4)
	if err != nil {
		return nil, err
	}

	summary, err := h.ds.Summary(ctx)
	if err != nil {
		h.log.Warn("weekly_summary: totals failed", "error", err)
	}

	return jsonContents(req.Params.URI, map[string]any{
		"weeks":    buckets,
		"all_time": summary,
	})
}

func (h *handlers) planCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	plans, err := h.ds.Plans(ctx)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, plans)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
