package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bobmcallan/signal-portal/internal/client"
	"github.com/bobmcallan/signal-portal/internal/common"
	"github.com/bobmcallan/signal-portal/internal/config"
	"github.com/bobmcallan/signal-portal/internal/orchestrator"
)

// AnalyzeHandler runs one full analysis cycle and returns the regenerated
// fragments plus the chart payload.
type AnalyzeHandler struct {
	logger       *common.Logger
	orchestrator *orchestrator.Orchestrator
	defaults     config.AnalysisConfig
}

// NewAnalyzeHandler creates a new analyze handler. Missing request parameters
// fall back to the configured form defaults.
func NewAnalyzeHandler(logger *common.Logger, o *orchestrator.Orchestrator, defaults config.AnalysisConfig) *AnalyzeHandler {
	return &AnalyzeHandler{
		logger:       logger,
		orchestrator: o,
		defaults:     defaults,
	}
}

// ServeHTTP handles GET /api/analyze.
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	q := r.URL.Query()

	ticker := q.Get("ticker")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	params := client.AnalysisParams{
		Ticker:        ticker,
		LongMAPeriod:  intParam(q.Get("long_ma_period"), h.defaults.LongMAPeriod),
		ShortMAPeriod: intParam(q.Get("short_ma_period"), h.defaults.ShortMAPeriod),
		StartDate:     stringParam(q.Get("start_date"), h.defaults.StartDate),
		InitialSum:    floatParam(q.Get("initial_sum"), h.defaults.InitialSum),
		GrowthTarget:  floatParam(q.Get("growth_target"), h.defaults.GrowthTarget),
	}

	snapshot, err := h.orchestrator.Analyze(r.Context(), params)
	if err != nil {
		if errors.Is(err, orchestrator.ErrAnalysisInFlight) {
			WriteError(w, http.StatusConflict, "analysis already in progress")
			return
		}
		h.logger.Error().Err(err).Str("ticker", ticker).Msg("analyze: render failed")
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func floatParam(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func stringParam(raw, fallback string) string {
	if raw == "" {
		return fallback
	}
	return raw
}
