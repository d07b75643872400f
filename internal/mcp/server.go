package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog workout tracker. Query training plans, finished-workout history, per-exercise progression, and weekly volume rollups."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetProgression, Handler: h.getProgression},
		server.ServerTool{Tool: toolGetWeeklyActivity, Handler: h.getWeeklyActivity},
		server.ServerTool{Tool: toolGetSummary, Handler: h.getSummary},
		server.ServerTool{Tool: toolGetHistory, Handler: h.getHistory},
		server.ServerTool{Tool: toolListPlans, Handler: h.listPlans},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentHistory, Handler: h.recentHistory},
		server.ServerResource{Resource: resWeeklySummary, Handler: h.weeklySummary},
		server.ServerResource{Resource: resPlanCatalog, Handler: h.planCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentHistory = mcp.NewResource(
	"liftlog://recent_history",
	"Recent Workouts",
	mcp.WithResourceDescription("Finished workouts from the last 14 days with per-exercise completed sets"),
	mcp.WithMIMEType("application/json"),
)

var resWeeklySummary = mcp.NewResource(
	"liftlog://weekly_summary",
	"Weekly Summary",
	mcp.WithResourceDescription("Workout count and training volume per week for the last 4 weeks, plus all-time totals"),
	mcp.WithMIMEType("application/json"),
)

var resPlanCatalog = mcp.NewResource(
	"liftlog://plan_catalog",
	"Plan Catalog",
	mcp.WithResourceDescription("All training plans with their days, exercises, and set/rep targets"),
	mcp.WithMIMEType("application/json"),
)
