package handlers

import (
	"net/http"

	"github.com/bobmcallan/signal-portal/internal/autocomplete"
	"github.com/bobmcallan/signal-portal/internal/common"
)

// SuggestHandler feeds keystrokes into the autocomplete engine. Each request
// is one input event; the response resolves once the engine settles it.
type SuggestHandler struct {
	logger *common.Logger
	engine *autocomplete.Engine
}

// NewSuggestHandler creates a new suggestion handler.
func NewSuggestHandler(logger *common.Logger, engine *autocomplete.Engine) *SuggestHandler {
	return &SuggestHandler{logger: logger, engine: engine}
}

// ServeHTTP handles GET /api/tickers/suggest. A superseded input (a newer
// keystroke arrived first) or a closed list yields 204 No Content: the page
// hides the list and renders nothing.
func (h *SuggestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	query := r.URL.Query().Get("q")
	result := <-h.engine.Input(r.Context(), query)

	switch result.Status {
	case autocomplete.ResultOpen:
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"query":       result.Query,
			"suggestions": result.Suggestions,
		})
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
