package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetProgression = mcp.NewTool("get_progression",
	mcp.WithDescription("Per-workout progression series for one exercise: max weight, volume, and estimated one-rep max (Epley) per session, oldest first."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise display name (exact match, e.g. 'Bench Press')")),
)

var toolGetWeeklyActivity = mcp.NewTool("get_weekly_activity",
	mcp.WithDescription("Workout count and total training volume per 7-day window ending today, oldest week first."),
	mcp.WithNumber("weeks", mcp.Description("Number of weeks to include. Defaults to 4.")),
)

var toolGetSummary = mcp.NewTool("get_summary",
	mcp.WithDescription("All-time totals: workout count, training volume, and distinct active days."),
)

var toolGetHistory = mcp.NewTool("get_history",
	mcp.WithDescription("Finished-workout records, newest first, including per-exercise completed sets."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of records to return. Defaults to all.")),
)

var toolListPlans = mcp.NewTool("list_plans",
	mcp.WithDescription("All training plans with their workout days and exercise targets."),
)

// --- Tool handlers ---

func (h *handlers) getProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	series, err := h.ds.Progression(ctx, exercise)
	if err != nil {
		h.log.Error("mcp get_progression", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(series)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeeklyActivity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weeks := req.GetInt("weeks", 4)
	if weeks <= 0 {
		return mcp.NewToolResultError("weeks must be positive"), nil
	}

	buckets, err := h.ds.WeeklyActivity(ctx, weeks)
	if err != nil {
		h.log.Error("mcp get_weekly_activity", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(buckets)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := h.ds.Summary(ctx)
	if err != nil {
		h.log.Error("mcp get_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(summary)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 0)

	records, err := h.ds.History(ctx, limit)
	if err != nil {
		h.log.Error("mcp get_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listPlans(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plans, err := h.ds.Plans(ctx)
	if err != nil {
		h.log.Error("mcp list_plans", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(plans)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
