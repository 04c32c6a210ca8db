package handlers

import (
	"html/template"
	"net/http"

	"github.com/bobmcallan/signal-portal/internal/common"
	"github.com/bobmcallan/signal-portal/internal/config"
)

// indexTemplate is the portal page. The server regenerates every fragment it
// contains; the page itself only swaps them in.
const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Stock Signal Analysis</title>
    <link rel="stylesheet" href="/static/style.css">
</head>
<body>
    <h1>Stock Trading Signal Analysis</h1>

    <div class="controls">
        <div class="control-group">
            <label for="ticker-input">Ticker</label>
            <input type="text" id="ticker-input" autocomplete="off" placeholder="e.g. AAPL">
            <div id="autocomplete-list" class="autocomplete-list"></div>
        </div>
        <div class="control-group">
            <label for="long-ma-input">Long MA (weeks)</label>
            <input type="number" id="long-ma-input" value="{{.LongMAPeriod}}">
        </div>
        <div class="control-group">
            <label for="short-ma-input">Short MA (days)</label>
            <input type="number" id="short-ma-input" value="{{.ShortMAPeriod}}">
        </div>
        <div class="control-group">
            <label for="start-date-input">Start Date</label>
            <input type="date" id="start-date-input" value="{{.StartDate}}">
        </div>
        <div class="control-group">
            <label for="initial-sum-input">Initial Sum ($)</label>
            <input type="number" id="initial-sum-input" value="{{.InitialSum}}">
        </div>
        <div class="control-group">
            <label for="growth-target-input">Growth Target (%)</label>
            <input type="number" id="growth-target-input" value="{{.GrowthTarget}}">
        </div>
        <button id="analyze-button">Analyze</button>
    </div>

    <div id="message-container"></div>
    <div id="comparison-summary"></div>
    <div id="chart-container"></div>
    <div id="signal-table-container"></div>

    <script src="/static/app.js"></script>
</body>
</html>
`

// IndexHandler serves the portal page with the analysis form pre-filled.
// Query parameters override the configured defaults, so a bookmarked URL
// restores its settings.
type IndexHandler struct {
	logger   *common.Logger
	template *template.Template
	defaults config.AnalysisConfig
}

// NewIndexHandler creates a new index page handler.
func NewIndexHandler(logger *common.Logger, defaults config.AnalysisConfig) *IndexHandler {
	return &IndexHandler{
		logger:   logger,
		template: template.Must(template.New("index").Parse(indexTemplate)),
		defaults: defaults,
	}
}

// ServeHTTP handles GET /.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !RequireMethod(w, r, "GET") {
		return
	}

	q := r.URL.Query()
	data := struct {
		LongMAPeriod  int
		ShortMAPeriod int
		StartDate     string
		InitialSum    float64
		GrowthTarget  float64
	}{
		LongMAPeriod:  intParam(q.Get("long_ma_period"), h.defaults.LongMAPeriod),
		ShortMAPeriod: intParam(q.Get("short_ma_period"), h.defaults.ShortMAPeriod),
		StartDate:     stringParam(q.Get("start_date"), h.defaults.StartDate),
		InitialSum:    floatParam(q.Get("initial_sum"), h.defaults.InitialSum),
		GrowthTarget:  floatParam(q.Get("growth_target"), h.defaults.GrowthTarget),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, data); err != nil {
		h.logger.Error().Err(err).Msg("index: failed to render page")
	}
}
