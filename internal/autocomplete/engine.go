// Package autocomplete implements the debounced ticker-lookup engine behind
// the search input. Each keystroke replaces the previous pending lookup; only
// the last input in a burst reaches the backend, and a lookup that resolves
// after the query has moved on is discarded rather than rendered.
package autocomplete

import (
	"context"
	"sync"
	"time"

	"github.com/bobmcallan/signal-portal/internal/common"
	"github.com/bobmcallan/signal-portal/internal/models"
)

// State is the engine's position in the Idle -> Pending -> {ListOpen, Idle}
// machine.
type State int

const (
	StateIdle State = iota
	StatePending
	StateListOpen
)

// DefaultDelay is the debounce window between the last keystroke and the
// lookup request.
const DefaultDelay = 300 * time.Millisecond

// DefaultMaxSuggestions caps the suggestion list length.
const DefaultMaxSuggestions = 10

// LookupFunc fetches suggestions for a query. Injected so the engine can be
// driven without a network in tests.
type LookupFunc func(ctx context.Context, query string) ([]models.SuggestionItem, error)

// Timer is the cancelable handle returned by a TimerFactory.
type Timer interface {
	Stop() bool
}

// TimerFactory schedules fn after d. Injected so debounce behavior is
// deterministic in tests; the default wraps time.AfterFunc.
type TimerFactory func(d time.Duration, fn func()) Timer

func afterFunc(d time.Duration, fn func()) Timer { return time.AfterFunc(d, fn) }

// ResultStatus describes how one input event resolved.
type ResultStatus int

const (
	// ResultClosed: the list is closed (empty query, empty result set, or
	// a swallowed lookup failure).
	ResultClosed ResultStatus = iota
	// ResultOpen: the suggestion list opened with at least one item.
	ResultOpen
	// ResultSuperseded: a newer input replaced this one before its lookup
	// was issued.
	ResultSuperseded
)

// Result resolves one Input call.
type Result struct {
	Status      ResultStatus
	Query       string
	Suggestions []models.SuggestionItem
}

// Config tunes an Engine. Zero values fall back to defaults.
type Config struct {
	Delay          time.Duration
	MaxSuggestions int
	TimerFactory   TimerFactory
	Logger         *common.Logger
}

// Engine is the autocomplete state machine. All transitions happen under one
// lock; lookups run outside it and re-validate their generation before
// touching state.
type Engine struct {
	mu          sync.Mutex
	state       State
	query       string
	gen         uint64
	timer       Timer
	pending     chan Result
	suggestions []models.SuggestionItem

	delay    time.Duration
	maxItems int
	lookup   LookupFunc
	newTimer TimerFactory
	logger   *common.Logger
}

// NewEngine creates an engine in the Idle state.
func NewEngine(lookup LookupFunc, cfg Config) *Engine {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = DefaultMaxSuggestions
	}
	if cfg.TimerFactory == nil {
		cfg.TimerFactory = afterFunc
	}
	if cfg.Logger == nil {
		cfg.Logger = common.NewSilentLogger()
	}
	return &Engine{
		state:    StateIdle,
		delay:    cfg.Delay,
		maxItems: cfg.MaxSuggestions,
		lookup:   lookup,
		newTimer: cfg.TimerFactory,
		logger:   cfg.Logger,
	}
}

// Input handles one keystroke. An empty query closes the list immediately
// with no debounce. A non-empty query cancels any pending lookup timer and
// schedules a new one; the previous input resolves as superseded. The
// returned channel delivers exactly one Result and is then closed.
func (e *Engine) Input(ctx context.Context, query string) <-chan Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPendingLocked()
	e.gen++
	e.query = query

	ch := make(chan Result, 1)

	if query == "" {
		e.state = StateIdle
		e.suggestions = nil
		ch <- Result{Status: ResultClosed}
		close(ch)
		return ch
	}

	gen := e.gen
	e.state = StatePending
	e.pending = ch
	e.timer = e.newTimer(e.delay, func() {
		e.fire(ctx, query, gen)
	})
	return ch
}

// cancelPendingLocked stops the active timer and resolves the outstanding
// input as superseded. Must be called with mu held.
func (e *Engine) cancelPendingLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.pending != nil {
		e.pending <- Result{Status: ResultSuperseded, Query: e.query}
		close(e.pending)
		e.pending = nil
	}
}

// fire runs when the debounce timer elapses: it issues the lookup for the
// query that scheduled it, then applies the result only if no newer input
// has arrived in the meantime.
func (e *Engine) fire(ctx context.Context, query string, gen uint64) {
	e.mu.Lock()
	if e.gen != gen {
		// Canceled between timer fire and lock acquisition.
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	items, err := e.lookup(ctx, query)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gen != gen {
		// The query changed while the lookup was in flight. The response
		// is stale; the pending channel now belongs to the newer input.
		return
	}

	if err != nil {
		// Lookup failures are logged and swallowed; the list stays closed.
		e.logger.Warn().Str("query", query).Str("error", err.Error()).Msg("ticker lookup failed")
		items = nil
	}

	if len(items) > e.maxItems {
		items = items[:e.maxItems]
	}

	result := Result{Status: ResultClosed, Query: query}
	if len(items) > 0 {
		e.state = StateListOpen
		e.suggestions = items
		result.Status = ResultOpen
		result.Suggestions = items
	} else {
		e.state = StateIdle
		e.suggestions = nil
	}

	e.timer = nil
	if e.pending != nil {
		e.pending <- result
		close(e.pending)
		e.pending = nil
	}
}

// Select resolves the suggestion at index into its ticker symbol and closes
// the list. Returns false when no list is open or the index is out of range.
func (e *Engine) Select(index int) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateListOpen || index < 0 || index >= len(e.suggestions) {
		return "", false
	}

	ticker := e.suggestions[index].Ticker
	e.gen++
	e.state = StateIdle
	e.suggestions = nil
	return ticker, true
}

// Dismiss closes the list and cancels any pending lookup without altering
// the input's text. Safe to call in any state.
func (e *Engine) Dismiss() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPendingLocked()
	e.gen++
	e.state = StateIdle
	e.suggestions = nil
}

// State returns the engine's current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Suggestions returns a copy of the open suggestion list.
func (e *Engine) Suggestions() []models.SuggestionItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.SuggestionItem, len(e.suggestions))
	copy(out, e.suggestions)
	return out
}
