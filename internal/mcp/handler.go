// Package mcp exposes the portal's analysis operations as MCP tools, so an
// agent can run the same analyses the page does.
package mcp

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/signal-portal/internal/common"
	"github.com/bobmcallan/signal-portal/internal/config"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates a new MCP handler with the portal's tools registered.
func NewHandler(deps ToolDeps, defaults config.AnalysisConfig, logger *common.Logger) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"signal-portal",
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(AnalyzeTool(), AnalyzeToolHandler(deps, defaults))
	mcpSrv.AddTool(SearchTool(), SearchToolHandler(deps))
	mcpSrv.AddTool(VersionTool(), VersionToolHandler())

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().Int("tools", 3).Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		logger:     logger,
	}
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
