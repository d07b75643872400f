package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
)

// HTTPClient implements DataSource by calling the LiftLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) Progression(ctx context.Context, exerciseName string) ([]analytics.ProgressionPoint, error) {
	params := url.Values{}
	params.Set("exercise", exerciseName)

	body, err := c.get(ctx, "/api/v1/analytics/progression", params)
	if err != nil {
		return nil, err
	}

	var series []analytics.ProgressionPoint
	if err := json.Unmarshal(body, &series); err != nil {
		return nil, fmt.Errorf("httpclient: decode progression: %w", err)
	}
	return series, nil
}

func (c *HTTPClient) WeeklyActivity(ctx context.Context, weeks int) ([]analytics.WeeklyBucket, error) {
	params := url.Values{}
	params.Set("weeks", strconv.Itoa(weeks))

	body, err := c.get(ctx, "/api/v1/analytics/weekly", params)
	if err != nil {
		return nil, err
	}

	var buckets []analytics.WeeklyBucket
	if err := json.Unmarshal(body, &buckets); err != nil {
		return nil, fmt.Errorf("httpclient: decode weekly activity: %w", err)
	}
	return buckets, nil
}

func (c *HTTPClient) Summary(ctx context.Context) (analytics.Summary, error) {
	body, err := c.get(ctx, "/api/v1/analytics/summary", nil)
	if err != nil {
		return analytics.Summary{}, err
	}

	var summary analytics.Summary
	if err := json.Unmarshal(body, &summary); err != nil {
		return analytics.Summary{}, fmt.Errorf("httpclient: decode summary: %w", err)
	}
	return summary, nil
}

func (c *HTTPClient) History(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, "/api/v1/history", params)
	if err != nil {
		return nil, err
	}

	var records []models.HistoryRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("httpclient: decode history: %w", err)
	}
	return records, nil
}

func (c *HTTPClient) Plans(ctx context.Context) ([]models.TrainingPlan, error) {
	body, err := c.get(ctx, "/api/v1/plans", nil)
	if err != nil {
		return nil, err
	}

	var plans []models.TrainingPlan
	if err := json.Unmarshal(body, &plans); err != nil {
		return nil, fmt.Errorf("httpclient: decode plans: %w", err)
	}
	return plans, nil
}
