package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestClientProgression verifies the client sends the exercise query param
// and parses the JSON array response.
func TestClientProgression(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/analytics/progression": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("exercise"); got != "Bench Press" {
				t.Errorf("exercise=%q, want 'Bench Press'", got)
			}
			writeTestJSON(t, w, []analytics.ProgressionPoint{
				{Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), MaxWeight: 100, Volume: 2400},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	series, err := client.Progression(context.Background(), "Bench Press")
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 1 {
		t.Fatalf("got %d points, want 1", len(series))
	}
	if series[0].MaxWeight != 100 {
		t.Errorf("max_weight=%v, want 100", series[0].MaxWeight)
	}
}

// TestClientWeeklyActivity verifies the weeks param and bucket parsing.
func TestClientWeeklyActivity(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/analytics/weekly": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("weeks"); got != "6" {
				t.Errorf("weeks=%q, want 6", got)
			}
			writeTestJSON(t, w, []analytics.WeeklyBucket{
				{Label: "1w ago", Workouts: 3, Volume: 5000},
				{Label: "this week", Workouts: 1, Volume: 1200},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	buckets, err := client.WeeklyActivity(context.Background(), 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if buckets[1].Label != "this week" {
		t.Errorf("label=%q, want 'this week'", buckets[1].Label)
	}
}

// TestClientSummary verifies a single struct response is parsed.
func TestClientSummary(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/analytics/summary": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, analytics.Summary{TotalWorkouts: 42, TotalVolume: 90000, ActiveDays: 38})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	summary, err := client.Summary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalWorkouts != 42 {
		t.Errorf("total_workouts=%d, want 42", summary.TotalWorkouts)
	}
}

// TestClientHistoryLimit verifies the limit param is only sent when positive.
func TestClientHistoryLimit(t *testing.T) {
	var gotLimit string
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/history": func(w http.ResponseWriter, r *http.Request) {
			gotLimit = r.URL.Query().Get("limit")
			writeTestJSON(t, w, []models.HistoryRecord{{ID: "rec-1", TotalVolume: 600}})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)

	if _, err := client.History(context.Background(), 5); err != nil {
		t.Fatal(err)
	}
	if gotLimit != "5" {
		t.Errorf("limit=%q, want 5", gotLimit)
	}

	if _, err := client.History(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	if gotLimit != "" {
		t.Errorf("limit=%q, want empty for limit 0", gotLimit)
	}
}

// TestClientPlans verifies plan catalog parsing.
func TestClientPlans(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/plans": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []models.TrainingPlan{
				{ID: "plan-1", Name: "Starter Plan"},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	plans, err := client.Plans(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 1 {
		t.Fatalf("got %d plans, want 1", len(plans))
	}
	if plans[0].Name != "Starter Plan" {
		t.Errorf("name=%q, want 'Starter Plan'", plans[0].Name)
	}
}

// TestHTTPClientServerError verifies the client returns an error on non-200 responses.
func TestHTTPClientServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/plans": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"database down"}`))
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	_, err := client.Plans(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}
