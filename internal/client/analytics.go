// Package client communicates with the analytics backend REST API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bobmcallan/signal-portal/internal/models"
)

// APIError is a validated failure reported by the backend (unknown ticker,
// bad date range). Message carries the server-supplied text verbatim so it
// can be surfaced to the user.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("analysis failed (%d): %s", e.StatusCode, e.Message)
}

// genericAnalysisError is shown when a failure response carries no error text.
const genericAnalysisError = "Failed to fetch analysis data."

// AnalysisParams carries the six form inputs of one analysis request.
type AnalysisParams struct {
	Ticker        string
	LongMAPeriod  int
	ShortMAPeriod int
	StartDate     string
	InitialSum    float64
	GrowthTarget  float64
}

// QueryParams renders the parameters as analysis request query values.
func (p AnalysisParams) QueryParams() map[string]string {
	return map[string]string{
		"ticker":          p.Ticker,
		"long_ma_period":  strconv.Itoa(p.LongMAPeriod),
		"short_ma_period": strconv.Itoa(p.ShortMAPeriod),
		"start_date":      p.StartDate,
		"initial_sum":     strconv.FormatFloat(p.InitialSum, 'f', -1, 64),
		"growth_target":   strconv.FormatFloat(p.GrowthTarget, 'f', -1, 64),
	}
}

// AnalyticsClient targets the analytics backend's two read endpoints.
type AnalyticsClient struct {
	client *resty.Client
}

// NewAnalyticsClient creates a client for the given backend base URL.
func NewAnalyticsClient(baseURL string, timeout time.Duration) *AnalyticsClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := resty.New()
	c.SetBaseURL(baseURL)
	c.SetTimeout(timeout)

	return &AnalyticsClient{client: c}
}

// SearchTickers looks up autocomplete matches for a partial query. A
// non-success status is treated as "no suggestions" rather than an error.
func (c *AnalyticsClient) SearchTickers(ctx context.Context, query string) ([]models.SuggestionItem, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		Get("/api/search_tickers")
	if err != nil {
		return nil, fmt.Errorf("failed to reach analytics backend: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, nil
	}

	var items []models.SuggestionItem
	if err := json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("failed to parse ticker suggestions: %w", err)
	}
	return items, nil
}

// Analyze runs the full dual-strategy analysis for the given parameters. A
// failure response yields an *APIError carrying the server-supplied reason,
// or a generic fallback when the body has none.
func (c *AnalyticsClient) Analyze(ctx context.Context, p AnalysisParams) (*models.AnalysisResult, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(p.QueryParams()).
		Get("/api/analyze")
	if err != nil {
		return nil, fmt.Errorf("failed to reach analytics backend: %w", err)
	}

	if resp.StatusCode() != 200 {
		var failure struct {
			Error string `json:"error"`
		}
		message := genericAnalysisError
		if json.Unmarshal(resp.Body(), &failure) == nil && failure.Error != "" {
			message = failure.Error
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: message}
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}
	return &result, nil
}
