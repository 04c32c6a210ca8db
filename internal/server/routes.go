package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Portal page
	mux.Handle("/", s.app.IndexHandler)

	// MCP endpoint (JSON-RPC over HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.HandlerFor(s.app.Metrics, promhttp.HandlerOpts{}))

	// API routes
	mux.Handle("/api/analyze", s.app.AnalyzeHandler)
	mux.Handle("/api/signals/page", s.app.PageHandler)
	mux.Handle("/api/tickers/suggest", s.app.SuggestHandler)
	mux.Handle("/api/tickers/search", s.app.SearchHandler)
	mux.Handle("/api/health", s.app.HealthHandler)
	mux.Handle("/api/version", s.app.VersionHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
