package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bobmcallan/signal-portal/internal/common"
	"github.com/bobmcallan/signal-portal/internal/orchestrator"
)

// PageHandler moves the signal table pager and returns the re-rendered
// fragment.
type PageHandler struct {
	logger       *common.Logger
	orchestrator *orchestrator.Orchestrator
}

// NewPageHandler creates a new page navigation handler.
func NewPageHandler(logger *common.Logger, o *orchestrator.Orchestrator) *PageHandler {
	return &PageHandler{logger: logger, orchestrator: o}
}

type pageRequest struct {
	Dir string `json:"dir"`
}

// ServeHTTP handles POST /api/signals/page.
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req pageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var html string
	var err error
	switch req.Dir {
	case "next":
		html, err = h.orchestrator.NavigateNext()
	case "prev":
		html, err = h.orchestrator.NavigatePrev()
	default:
		WriteError(w, http.StatusBadRequest, "dir must be next or prev")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("dir", req.Dir).Msg("page: render failed")
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"table_html": html,
	})
}
