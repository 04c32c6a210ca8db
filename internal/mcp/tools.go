package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/signal-portal/internal/client"
	"github.com/bobmcallan/signal-portal/internal/config"
	"github.com/bobmcallan/signal-portal/internal/models"
	"github.com/bobmcallan/signal-portal/internal/orchestrator"
)

// ToolDeps carries the portal operations the tools call into. Function-valued
// so tests can drive the tools without a backend.
type ToolDeps struct {
	Analyze func(ctx context.Context, p client.AnalysisParams) (*orchestrator.Snapshot, error)
	Search  func(ctx context.Context, query string) ([]models.SuggestionItem, error)
}

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

func textResult(v interface{}) *mcp.CallToolResult {
	out, err := json.Marshal(v)
	if err != nil {
		return errorResult("failed to marshal tool result")
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(out))},
	}
}

// AnalyzeTool returns the mcp.Tool definition for analyze_ticker.
func AnalyzeTool() mcp.Tool {
	return mcp.NewTool("analyze_ticker",
		mcp.WithDescription("Run the full MA crossover analysis for a stock ticker: signal table, trade metrics, dual-strategy comparison and chart data. Parameters omitted fall back to the portal defaults."),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Stock ticker symbol, e.g. AAPL"),
		),
		mcp.WithNumber("long_ma_period",
			mcp.Description("Long moving average window in weeks"),
		),
		mcp.WithNumber("short_ma_period",
			mcp.Description("Short moving average window in days"),
		),
		mcp.WithString("start_date",
			mcp.Description("Analysis start date, YYYY-MM-DD"),
		),
		mcp.WithNumber("initial_sum",
			mcp.Description("Total investment split across the two strategies"),
		),
		mcp.WithNumber("growth_target",
			mcp.Description("Hybrid strategy growth target in percent"),
		),
	)
}

// AnalyzeToolHandler runs one analysis cycle and returns the snapshot as JSON.
func AnalyzeToolHandler(deps ToolDeps, defaults config.AnalysisConfig) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker := r.GetString("ticker", "")
		if ticker == "" {
			return errorResult("ticker is required"), nil
		}

		params := client.AnalysisParams{
			Ticker:        ticker,
			LongMAPeriod:  r.GetInt("long_ma_period", defaults.LongMAPeriod),
			ShortMAPeriod: r.GetInt("short_ma_period", defaults.ShortMAPeriod),
			StartDate:     r.GetString("start_date", defaults.StartDate),
			InitialSum:    r.GetFloat("initial_sum", defaults.InitialSum),
			GrowthTarget:  r.GetFloat("growth_target", defaults.GrowthTarget),
		}

		snapshot, err := deps.Analyze(ctx, params)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(snapshot), nil
	}
}

// SearchTool returns the mcp.Tool definition for search_tickers.
func SearchTool() mcp.Tool {
	return mcp.NewTool("search_tickers",
		mcp.WithDescription("Look up stock tickers matching a partial symbol or company name."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Partial ticker symbol or company name"),
		),
	)
}

// SearchToolHandler looks up ticker matches.
func SearchToolHandler(deps ToolDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := r.GetString("query", "")
		if query == "" {
			return errorResult("query is required"), nil
		}

		items, err := deps.Search(ctx, query)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if items == nil {
			items = []models.SuggestionItem{}
		}
		return textResult(items), nil
	}
}

// VersionTool returns the mcp.Tool definition for get_version.
func VersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the signal-portal version. Use this to verify connectivity."),
	)
}

// VersionToolHandler reports the portal build info.
func VersionToolHandler() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return textResult(map[string]string{
			"version": config.GetVersion(),
			"build":   config.GetBuild(),
			"commit":  config.GetGitCommit(),
		}), nil
	}
}
