package handlers

import (
	"context"
	"net/http"

	"github.com/bobmcallan/signal-portal/internal/cache"
	"github.com/bobmcallan/signal-portal/internal/common"
	"github.com/bobmcallan/signal-portal/internal/metrics"
	"github.com/bobmcallan/signal-portal/internal/models"
)

// SearchFunc looks up ticker matches on the analytics backend.
type SearchFunc func(ctx context.Context, query string) ([]models.SuggestionItem, error)

// maxSearchResults caps the suggestion list regardless of what the backend
// returns.
const maxSearchResults = 10

// SearchHandler is the direct ticker lookup passthrough, fronted by the
// suggestion cache.
type SearchHandler struct {
	logger  *common.Logger
	search  SearchFunc
	cache   *cache.SuggestionCache
	metrics *metrics.Registry
}

// NewSearchHandler creates a new search handler. cache and metrics may be nil.
func NewSearchHandler(logger *common.Logger, search SearchFunc, c *cache.SuggestionCache, m *metrics.Registry) *SearchHandler {
	return &SearchHandler{
		logger:  logger,
		search:  search,
		cache:   c,
		metrics: m,
	}
}

// ServeHTTP handles GET /api/tickers/search.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		WriteJSON(w, http.StatusOK, []models.SuggestionItem{})
		return
	}

	key := cache.MakeKey(query)
	if h.cache != nil {
		if items, ok := h.cache.Get(key); ok {
			h.recordLookup("cache")
			WriteJSON(w, http.StatusOK, items)
			return
		}
	}

	items, err := h.search(r.Context(), query)
	if err != nil {
		h.logger.Warn().Err(err).Str("query", query).Msg("search: backend lookup failed")
		WriteError(w, http.StatusBadGateway, "ticker search unavailable")
		return
	}
	if len(items) > maxSearchResults {
		items = items[:maxSearchResults]
	}
	if items == nil {
		items = []models.SuggestionItem{}
	}

	if h.cache != nil {
		h.cache.Set(key, items)
	}
	h.recordLookup("backend")

	WriteJSON(w, http.StatusOK, items)
}

func (h *SearchHandler) recordLookup(source string) {
	if h.metrics != nil {
		h.metrics.RecordTickerLookup(source)
	}
}
