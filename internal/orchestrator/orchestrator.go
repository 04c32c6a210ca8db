// Package orchestrator owns the portal's presentation state and drives the
// full analysis cycle: one backend request, then wholesale regeneration of the
// comparison, table and chart fragments.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bobmcallan/signal-portal/internal/chart"
	"github.com/bobmcallan/signal-portal/internal/client"
	"github.com/bobmcallan/signal-portal/internal/common"
	"github.com/bobmcallan/signal-portal/internal/metrics"
	"github.com/bobmcallan/signal-portal/internal/models"
	"github.com/bobmcallan/signal-portal/internal/view"
)

// ErrAnalysisInFlight is returned when Analyze is called while a previous run
// has not finished. State is left untouched.
var ErrAnalysisInFlight = errors.New("analysis already in progress")

// AnalyzeFunc issues one analysis request to the backend.
type AnalyzeFunc func(ctx context.Context, p client.AnalysisParams) (*models.AnalysisResult, error)

// Snapshot is one rendered view of the portal after an analysis run.
type Snapshot struct {
	Status         string         `json:"status"`
	Message        view.Message   `json:"message"`
	MessageHTML    string         `json:"message_html"`
	ComparisonHTML string         `json:"comparison_html"`
	TableHTML      string         `json:"table_html"`
	Chart          *chart.Payload `json:"chart,omitempty"`
}

// Config wires the orchestrator's collaborators.
type Config struct {
	Analyze     AnalyzeFunc
	RowsPerPage int
	// ClearSuggestions, when set, is called while resetting state so a stale
	// autocomplete list cannot survive into the new analysis.
	ClearSuggestions func()
	Metrics          *metrics.Registry
	Logger           *common.Logger
}

// Orchestrator serializes analysis runs and owns the pager, the last result
// and the loading flag. Single session: one instance serves the portal.
type Orchestrator struct {
	mu      sync.Mutex
	loading bool

	analyze          AnalyzeFunc
	clearSuggestions func()
	metrics          *metrics.Registry
	logger           *common.Logger

	pager  *view.Pager
	result *models.AnalysisResult
	ticker string
}

// New creates an orchestrator. cfg.Analyze is required.
func New(cfg Config) *Orchestrator {
	rows := cfg.RowsPerPage
	if rows <= 0 {
		rows = view.DefaultRowsPerPage
	}
	logger := cfg.Logger
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Orchestrator{
		analyze:          cfg.Analyze,
		clearSuggestions: cfg.ClearSuggestions,
		metrics:          cfg.Metrics,
		logger:           logger,
		pager:            view.NewPager(rows),
	}
}

// Loading reports whether an analysis run is in flight.
func (o *Orchestrator) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}

// Analyze runs one full analysis cycle for the given parameters. Re-entry
// while a run is in flight fails with ErrAnalysisInFlight. On every exit path
// the loading flag is cleared last.
func (o *Orchestrator) Analyze(ctx context.Context, p client.AnalysisParams) (*Snapshot, error) {
	p.Ticker = strings.ToUpper(strings.TrimSpace(p.Ticker))

	o.mu.Lock()
	if o.loading {
		o.mu.Unlock()
		return nil, ErrAnalysisInFlight
	}
	o.loading = true

	// Reset presentation state before the request goes out so a failed run
	// never shows the previous ticker's data.
	o.result = nil
	o.ticker = p.Ticker
	o.pager.Reset()
	if o.clearSuggestions != nil {
		o.clearSuggestions()
	}
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.loading = false
		o.mu.Unlock()
	}()

	start := time.Now()
	result, err := o.analyze(ctx, p)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		if o.metrics != nil {
			o.metrics.RecordAnalysis("error", elapsed)
		}
		o.logger.Warn().Err(err).Str("ticker", p.Ticker).Msg("Analysis request failed")
		return o.failureSnapshot(err), nil
	}

	if o.metrics != nil {
		o.metrics.RecordAnalysis("success", elapsed)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.result = result
	o.pager.SetDataset(result.TableData)

	comparisonHTML, renderErr := view.RenderComparison(result.ComparisonSummary(), p.GrowthTarget)
	if renderErr != nil {
		return nil, fmt.Errorf("failed to render comparison: %w", renderErr)
	}
	tableHTML, renderErr := view.RenderTable(o.pager, result.TradeSummary())
	if renderErr != nil {
		return nil, fmt.Errorf("failed to render signal table: %w", renderErr)
	}

	payload := chart.BuildPayload(p.Ticker, result)

	msg := view.Message{
		Kind: view.MessageSuccess,
		Text: fmt.Sprintf("Analysis complete for %s.", p.Ticker),
	}
	if len(result.TableData) == 0 {
		msg = view.Message{
			Kind: view.MessageInfo,
			Text: fmt.Sprintf("No crossover signals found for %s since %s. Strategy simulations rely on these signals.", p.Ticker, p.StartDate),
		}
	}

	o.logger.Info().
		Str("ticker", p.Ticker).
		Int("signals", len(result.TableData)).
		Msg("Analysis complete")

	return &Snapshot{
		Status:         string(msg.Kind),
		Message:        msg,
		MessageHTML:    view.RenderMessage(msg),
		ComparisonHTML: comparisonHTML,
		TableHTML:      tableHTML,
		Chart:          &payload,
	}, nil
}

// failureSnapshot renders the error path: no fragments, just the message the
// user should see.
func (o *Orchestrator) failureSnapshot(err error) *Snapshot {
	text := "Failed to fetch analysis data."
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		text = apiErr.Message
	}
	msg := view.Message{Kind: view.MessageError, Text: text}
	return &Snapshot{
		Status:      string(view.MessageError),
		Message:     msg,
		MessageHTML: view.RenderMessage(msg),
	}
}

// NavigateNext advances the pager one page and re-renders the table fragment.
func (o *Orchestrator) NavigateNext() (string, error) {
	return o.navigate(func(p *view.Pager) { p.Next() }, "next")
}

// NavigatePrev moves the pager back one page and re-renders the table
// fragment.
func (o *Orchestrator) NavigatePrev() (string, error) {
	return o.navigate(func(p *view.Pager) { p.Prev() }, "prev")
}

func (o *Orchestrator) navigate(move func(*view.Pager), direction string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	move(o.pager)
	if o.metrics != nil {
		o.metrics.RecordPageNavigation(direction)
	}

	summary := models.TradeSummary{}
	if o.result != nil {
		summary = o.result.TradeSummary()
	}
	return view.RenderTable(o.pager, summary)
}

// Ticker returns the ticker of the most recent analysis run.
func (o *Orchestrator) Ticker() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ticker
}

// CurrentPage exposes the pager position for diagnostics.
func (o *Orchestrator) CurrentPage() (page, total int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pager.CurrentPage(), o.pager.TotalPages()
}
