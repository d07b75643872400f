package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// fakeDataSource returns canned data so tool handlers can be exercised
// without a server.
type fakeDataSource struct {
	gotExercise string
	gotWeeks    int
	gotLimit    int
	err         error
}

func (f *fakeDataSource) Progression(ctx context.Context, exerciseName string) ([]analytics.ProgressionPoint, error) {
	f.gotExercise = exerciseName
	if f.err != nil {
		return nil, f.err
	}
	return []analytics.ProgressionPoint{
		{Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), MaxWeight: 100, Volume: 2400, EstOneRepMax: 126.6},
	}, nil
}

func (f *fakeDataSource) WeeklyActivity(ctx context.Context, weeks int) ([]analytics.WeeklyBucket, error) {
	f.gotWeeks = weeks
	if f.err != nil {
		return nil, f.err
	}
	return make([]analytics.WeeklyBucket, weeks), nil
}

func (f *fakeDataSource) Summary(ctx context.Context) (analytics.Summary, error) {
	return analytics.Summary{TotalWorkouts: 42}, f.err
}

func (f *fakeDataSource) History(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return []models.HistoryRecord{{ID: "rec-1"}}, nil
}

func (f *fakeDataSource) Plans(ctx context.Context) ([]models.TrainingPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.TrainingPlan{{ID: "plan-1", Name: "Starter Plan"}}, nil
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text payload from a tool result.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", res.Content[0])
	}
	return text.Text
}

func newTestHandlers(ds DataSource) *handlers {
	return &handlers{ds: ds, log: slog.Default()}
}

// TestGetProgressionTool verifies the exercise argument is forwarded and
// the series is returned as JSON.
func TestGetProgressionTool(t *testing.T) {
	ds := &fakeDataSource{}
	h := newTestHandlers(ds)

	res, err := h.getProgression(context.Background(), toolRequest(map[string]any{"exercise": "Bench Press"}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if ds.gotExercise != "Bench Press" {
		t.Errorf("exercise = %q, want 'Bench Press'", ds.gotExercise)
	}

	var series []analytics.ProgressionPoint
	if err := json.Unmarshal([]byte(resultText(t, res)), &series); err != nil {
		t.Fatalf("result is not a JSON series: %v", err)
	}
	if len(series) != 1 || series[0].MaxWeight != 100 {
		t.Errorf("series = %+v, want one point at 100", series)
	}
}

// TestGetProgressionToolMissingArg verifies a missing exercise becomes a
// tool error, not a transport error.
func TestGetProgressionToolMissingArg(t *testing.T) {
	h := newTestHandlers(&fakeDataSource{})

	res, err := h.getProgression(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected tool error for missing exercise argument")
	}
}

// TestGetWeeklyActivityTool verifies the weeks default and validation.
func TestGetWeeklyActivityTool(t *testing.T) {
	ds := &fakeDataSource{}
	h := newTestHandlers(ds)

	res, err := h.getWeeklyActivity(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if ds.gotWeeks != 4 {
		t.Errorf("weeks = %d, want default 4", ds.gotWeeks)
	}

	res, err = h.getWeeklyActivity(context.Background(), toolRequest(map[string]any{"weeks": -1}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected tool error for non-positive weeks")
	}
}

// TestGetHistoryTool verifies the limit argument defaults to everything.
func TestGetHistoryTool(t *testing.T) {
	ds := &fakeDataSource{}
	h := newTestHandlers(ds)

	res, err := h.getHistory(context.Background(), toolRequest(map[string]any{"limit": 3}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if ds.gotLimit != 3 {
		t.Errorf("limit = %d, want 3", ds.gotLimit)
	}
}

// TestToolDataSourceError verifies a failing data source surfaces as a
// tool error instead of a handler error.
func TestToolDataSourceError(t *testing.T) {
	ds := &fakeDataSource{err: errors.New("connection refused")}
	h := newTestHandlers(ds)

	res, err := h.getSummary(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected tool error when the data source fails")
	}
}

// TestResourceRecentHistory verifies the 14-day cutoff filter.
func TestResourceRecentHistory(t *testing.T) {
	old := models.HistoryRecord{ID: "old", CompletedAt: time.Now().AddDate(0, 0, -30)}
	fresh := models.HistoryRecord{ID: "fresh", CompletedAt: time.Now().AddDate(0, 0, -2)}
	h := newTestHandlers(&staticDataSource{records: []models.HistoryRecord{fresh, old}})

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "liftlog://recent_history"
	contents, err := h.recentHistory(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents length = %d, want 1", len(contents))
	}

	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents type = %T, want TextResourceContents", contents[0])
	}
	var records []models.HistoryRecord
	if err := json.Unmarshal([]byte(text.Text), &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != "fresh" {
		t.Errorf("records = %+v, want only the recent record", records)
	}
}

// staticDataSource serves a fixed record list for resource tests.
type staticDataSource struct {
	fakeDataSource
	records []models.HistoryRecord
}

func (s *staticDataSource) History(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	return s.records, nil
}

// TestNewRegistersServer verifies construction with a live data source
// does not panic and produces a server.
func TestNewRegistersServer(t *testing.T) {
	s := New(&fakeDataSource{}, "test", slog.Default())
	if s == nil {
		t.Fatal("New returned nil server")
	}
}
