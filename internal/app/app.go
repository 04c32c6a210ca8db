// Package app wires the portal's components together.
package app

import (
	"time"

	"github.com/bobmcallan/signal-portal/internal/autocomplete"
	"github.com/bobmcallan/signal-portal/internal/cache"
	"github.com/bobmcallan/signal-portal/internal/client"
	"github.com/bobmcallan/signal-portal/internal/common"
	"github.com/bobmcallan/signal-portal/internal/config"
	"github.com/bobmcallan/signal-portal/internal/handlers"
	"github.com/bobmcallan/signal-portal/internal/mcp"
	"github.com/bobmcallan/signal-portal/internal/metrics"
	"github.com/bobmcallan/signal-portal/internal/orchestrator"
)

// App holds all application components and dependencies.
type App struct {
	Config  *config.Config
	Logger  *common.Logger
	Metrics *metrics.Registry

	Client       *client.AnalyticsClient
	Cache        *cache.SuggestionCache
	Engine       *autocomplete.Engine
	Orchestrator *orchestrator.Orchestrator

	// HTTP handlers
	IndexHandler   *handlers.IndexHandler
	AnalyzeHandler *handlers.AnalyzeHandler
	PageHandler    *handlers.PageHandler
	SuggestHandler *handlers.SuggestHandler
	SearchHandler  *handlers.SearchHandler
	HealthHandler  *handlers.HealthHandler
	VersionHandler *handlers.VersionHandler
	MCPHandler     *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.NewRegistry(),
	}

	a.Client = client.NewAnalyticsClient(cfg.API.URL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
	a.Cache = cache.New(time.Duration(cfg.Cache.TTLSeconds)*time.Second, cfg.Cache.MaxEntries)

	a.Engine = autocomplete.NewEngine(a.Client.SearchTickers, autocomplete.Config{
		Delay:  time.Duration(cfg.Analysis.DebounceMs) * time.Millisecond,
		Logger: logger,
	})

	a.Orchestrator = orchestrator.New(orchestrator.Config{
		Analyze:          a.Client.Analyze,
		RowsPerPage:      cfg.Analysis.RowsPerPage,
		ClearSuggestions: a.Engine.Dismiss,
		Metrics:          a.Metrics,
		Logger:           logger,
	})

	a.initHandlers()

	logger.Info().
		Str("api_url", cfg.API.URL).
		Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.IndexHandler = handlers.NewIndexHandler(a.Logger, a.Config.Analysis)
	a.AnalyzeHandler = handlers.NewAnalyzeHandler(a.Logger, a.Orchestrator, a.Config.Analysis)
	a.PageHandler = handlers.NewPageHandler(a.Logger, a.Orchestrator)
	a.SuggestHandler = handlers.NewSuggestHandler(a.Logger, a.Engine)
	a.SearchHandler = handlers.NewSearchHandler(a.Logger, a.Client.SearchTickers, a.Cache, a.Metrics)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)

	a.MCPHandler = mcp.NewHandler(mcp.ToolDeps{
		Analyze: a.Orchestrator.Analyze,
		Search:  a.Client.SearchTickers,
	}, a.Config.Analysis, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	return nil
}
