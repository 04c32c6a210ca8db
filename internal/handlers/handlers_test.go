package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/signal-portal/internal/autocomplete"
	"github.com/bobmcallan/signal-portal/internal/cache"
	"github.com/bobmcallan/signal-portal/internal/client"
	"github.com/bobmcallan/signal-portal/internal/common"
	"github.com/bobmcallan/signal-portal/internal/config"
	"github.com/bobmcallan/signal-portal/internal/models"
	"github.com/bobmcallan/signal-portal/internal/orchestrator"
)

func silent() *common.Logger { return common.NewSilentLogger() }

func strPtr(s string) *string { return &s }

func testResult(rows int) *models.AnalysisResult {
	r := &models.AnalysisResult{
		Dates:              []string{"2024-01-02"},
		ClosePrices:        []float64{185.5},
		ShortMAPrices:      []float64{184.0},
		LongMAPrices:       []float64{180.0},
		ShortMAPeriod:      20,
		LongMAPeriod:       50,
		AverageGainValue:   "$10.00",
		AverageGainPercent: "5.70%",
		TotalTradesDisplay: rows,
		AccuracyRatePct:    "100.00%",
		InitialSum:         1000,
		Strategy1:          models.StrategyResult{FinalValue: 550, TotalGain: 50, ROI: 10},
		Strategy2:          models.StrategyResult{FinalValue: 520, TotalGain: 20, ROI: 4},
	}
	for i := 0; i < rows; i++ {
		r.TableData = append(r.TableData, models.SignalRow{
			Date:        "2024-01-02",
			SignalType:  models.SignalSell,
			ClosePrice:  "$185.50",
			ShortMA:     "$184.00",
			LongMA:      "$180.00",
			GainValue:   strPtr("$10.00"),
			GainPercent: strPtr("5.70%"),
			ShortHeader: "20 Day SMA",
			LongHeader:  "50 Week SMA",
		})
	}
	return r
}

func testOrchestrator(analyze orchestrator.AnalyzeFunc) *orchestrator.Orchestrator {
	return orchestrator.New(orchestrator.Config{Analyze: analyze, Logger: silent()})
}

func analysisDefaults() config.AnalysisConfig {
	return config.NewDefaultConfig().Analysis
}

func TestHealthHandler_ReturnsOK(t *testing.T) {
	handler := NewHealthHandler(silent())

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %s", body["status"])
	}
}

func TestHealthHandler_RejectsNonGET(t *testing.T) {
	handler := NewHealthHandler(silent())

	req := httptest.NewRequest("POST", "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestVersionHandler_ReturnsJSON(t *testing.T) {
	handler := NewVersionHandler(silent())

	req := httptest.NewRequest("GET", "/api/version", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	for _, field := range []string{"version", "build", "git_commit"} {
		if _, ok := body[field]; !ok {
			t.Errorf("expected %s field in response", field)
		}
	}
}

func TestAnalyzeHandler_Success(t *testing.T) {
	var got client.AnalysisParams
	o := testOrchestrator(func(_ context.Context, p client.AnalysisParams) (*models.AnalysisResult, error) {
		got = p
		return testResult(2), nil
	})
	handler := NewAnalyzeHandler(silent(), o, analysisDefaults())

	req := httptest.NewRequest("GET", "/api/analyze?ticker=aapl", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	// Missing params fall back to configured defaults; ticker is uppercased.
	if got.Ticker != "AAPL" {
		t.Errorf("ticker = %q, want AAPL", got.Ticker)
	}
	if got.LongMAPeriod != 50 || got.ShortMAPeriod != 20 {
		t.Errorf("MA periods = %d/%d, want defaults 50/20", got.LongMAPeriod, got.ShortMAPeriod)
	}
	if got.StartDate != "2010-01-01" {
		t.Errorf("start date = %q, want default", got.StartDate)
	}
	if got.InitialSum != 1000.0 || got.GrowthTarget != 10.0 {
		t.Errorf("sums = %v/%v, want defaults 1000/10", got.InitialSum, got.GrowthTarget)
	}

	var body struct {
		Status         string          `json:"status"`
		ComparisonHTML string          `json:"comparison_html"`
		TableHTML      string          `json:"table_html"`
		Chart          json.RawMessage `json:"chart"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body.Status != "success" {
		t.Errorf("status = %q, want success", body.Status)
	}
	if body.ComparisonHTML == "" || body.TableHTML == "" || len(body.Chart) == 0 {
		t.Error("expected all fragments in success response")
	}
}

func TestAnalyzeHandler_ParamOverrides(t *testing.T) {
	var got client.AnalysisParams
	o := testOrchestrator(func(_ context.Context, p client.AnalysisParams) (*models.AnalysisResult, error) {
		got = p
		return testResult(0), nil
	})
	handler := NewAnalyzeHandler(silent(), o, analysisDefaults())

	req := httptest.NewRequest("GET", "/api/analyze?ticker=MSFT&long_ma_period=40&short_ma_period=10&start_date=2020-06-01&initial_sum=5000&growth_target=15", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got.LongMAPeriod != 40 || got.ShortMAPeriod != 10 {
		t.Errorf("MA periods = %d/%d, want 40/10", got.LongMAPeriod, got.ShortMAPeriod)
	}
	if got.StartDate != "2020-06-01" || got.InitialSum != 5000 || got.GrowthTarget != 15 {
		t.Errorf("params = %+v", got)
	}
}

func TestAnalyzeHandler_MissingTicker(t *testing.T) {
	handler := NewAnalyzeHandler(silent(), testOrchestrator(nil), analysisDefaults())

	req := httptest.NewRequest("GET", "/api/analyze", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestAnalyzeHandler_BackendFailureStillOK(t *testing.T) {
	o := testOrchestrator(func(context.Context, client.AnalysisParams) (*models.AnalysisResult, error) {
		return nil, &client.APIError{StatusCode: 400, Message: "Ticker not found"}
	})
	handler := NewAnalyzeHandler(silent(), o, analysisDefaults())

	req := httptest.NewRequest("GET", "/api/analyze?ticker=NOPE", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	// A backend failure is a rendered outcome, not a transport error.
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body struct {
		Status  string `json:"status"`
		Message struct {
			Text string `json:"text"`
		} `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body.Status != "error" || body.Message.Text != "Ticker not found" {
		t.Errorf("body = %+v", body)
	}
}

func TestAnalyzeHandler_InFlightConflict(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	o := testOrchestrator(func(context.Context, client.AnalysisParams) (*models.AnalysisResult, error) {
		close(started)
		<-release
		return testResult(0), nil
	})
	handler := NewAnalyzeHandler(silent(), o, analysisDefaults())

	go func() {
		req := httptest.NewRequest("GET", "/api/analyze?ticker=AAPL", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}()
	<-started

	req := httptest.NewRequest("GET", "/api/analyze?ticker=AAPL", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	close(release)

	if w.Code != http.StatusConflict {
		t.Errorf("expected status 409 while in flight, got %d", w.Code)
	}
}

func TestPageHandler_NextAndPrev(t *testing.T) {
	o := testOrchestrator(func(context.Context, client.AnalysisParams) (*models.AnalysisResult, error) {
		return testResult(7), nil
	})
	if _, err := o.Analyze(context.Background(), client.AnalysisParams{Ticker: "AAPL", StartDate: "2010-01-01", GrowthTarget: 10}); err != nil {
		t.Fatalf("setup analyze: %v", err)
	}
	handler := NewPageHandler(silent(), o)

	req := httptest.NewRequest("POST", "/api/signals/page", strings.NewReader(`{"dir":"next"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !strings.Contains(body["table_html"], "Page 2 of 2") {
		t.Errorf("table_html = %q", body["table_html"])
	}

	req = httptest.NewRequest("POST", "/api/signals/page", strings.NewReader(`{"dir":"prev"}`))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	json.Unmarshal(w.Body.Bytes(), &body)
	if !strings.Contains(body["table_html"], "Page 1 of 2") {
		t.Errorf("table_html = %q", body["table_html"])
	}
}

func TestPageHandler_InvalidDirection(t *testing.T) {
	handler := NewPageHandler(silent(), testOrchestrator(nil))

	req := httptest.NewRequest("POST", "/api/signals/page", strings.NewReader(`{"dir":"sideways"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestPageHandler_InvalidBody(t *testing.T) {
	handler := NewPageHandler(silent(), testOrchestrator(nil))

	req := httptest.NewRequest("POST", "/api/signals/page", strings.NewReader(`not json`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestSuggestHandler_OpenList(t *testing.T) {
	engine := autocomplete.NewEngine(func(context.Context, string) ([]models.SuggestionItem, error) {
		return []models.SuggestionItem{{Ticker: "AAPL", Name: "Apple Inc."}}, nil
	}, autocomplete.Config{Delay: time.Millisecond, Logger: silent()})
	handler := NewSuggestHandler(silent(), engine)

	req := httptest.NewRequest("GET", "/api/tickers/suggest?q=AAP", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body struct {
		Query       string                  `json:"query"`
		Suggestions []models.SuggestionItem `json:"suggestions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body.Query != "AAP" || len(body.Suggestions) != 1 || body.Suggestions[0].Ticker != "AAPL" {
		t.Errorf("body = %+v", body)
	}
}

func TestSuggestHandler_EmptyQueryNoContent(t *testing.T) {
	engine := autocomplete.NewEngine(nil, autocomplete.Config{Delay: time.Millisecond, Logger: silent()})
	handler := NewSuggestHandler(silent(), engine)

	req := httptest.NewRequest("GET", "/api/tickers/suggest", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", w.Code)
	}
}

func TestSuggestHandler_NoMatchesNoContent(t *testing.T) {
	engine := autocomplete.NewEngine(func(context.Context, string) ([]models.SuggestionItem, error) {
		return nil, nil
	}, autocomplete.Config{Delay: time.Millisecond, Logger: silent()})
	handler := NewSuggestHandler(silent(), engine)

	req := httptest.NewRequest("GET", "/api/tickers/suggest?q=ZZZZ", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", w.Code)
	}
}

func TestSearchHandler_BackendThenCache(t *testing.T) {
	calls := 0
	search := func(_ context.Context, query string) ([]models.SuggestionItem, error) {
		calls++
		return []models.SuggestionItem{{Ticker: "AAPL", Name: "Apple Inc."}}, nil
	}
	handler := NewSearchHandler(silent(), search, cache.New(time.Minute, 10), nil)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/api/tickers/search?q=AAP", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		var items []models.SuggestionItem
		if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if len(items) != 1 || items[0].Ticker != "AAPL" {
			t.Errorf("items = %+v", items)
		}
	}

	if calls != 1 {
		t.Errorf("backend called %d times, want 1 (second hit served from cache)", calls)
	}
}

func TestSearchHandler_EmptyQuery(t *testing.T) {
	handler := NewSearchHandler(silent(), nil, nil, nil)

	req := httptest.NewRequest("GET", "/api/tickers/search", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("body = %q, want empty array", w.Body.String())
	}
}

func TestSearchHandler_CapsResults(t *testing.T) {
	search := func(context.Context, string) ([]models.SuggestionItem, error) {
		items := make([]models.SuggestionItem, 25)
		for i := range items {
			items[i] = models.SuggestionItem{Ticker: "T", Name: "Ticker"}
		}
		return items, nil
	}
	handler := NewSearchHandler(silent(), search, nil, nil)

	req := httptest.NewRequest("GET", "/api/tickers/search?q=T", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var items []models.SuggestionItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(items) != 10 {
		t.Errorf("got %d items, want capped at 10", len(items))
	}
}

func TestSearchHandler_BackendError(t *testing.T) {
	search := func(context.Context, string) ([]models.SuggestionItem, error) {
		return nil, context.DeadlineExceeded
	}
	handler := NewSearchHandler(silent(), search, nil, nil)

	req := httptest.NewRequest("GET", "/api/tickers/search?q=AAP", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", w.Code)
	}
}

func TestIndexHandler_RendersFormDefaults(t *testing.T) {
	handler := NewIndexHandler(silent(), analysisDefaults())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`id="ticker-input"`,
		`id="autocomplete-list"`,
		`value="50"`,
		`value="20"`,
		`value="2010-01-01"`,
		`value="1000"`,
		`value="10"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %s", want)
		}
	}
}

func TestIndexHandler_QueryOverridesDefaults(t *testing.T) {
	handler := NewIndexHandler(silent(), analysisDefaults())

	req := httptest.NewRequest("GET", "/?long_ma_period=40&start_date=2020-01-01", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, `value="40"`) {
		t.Error("long MA override not rendered")
	}
	if !strings.Contains(body, `value="2020-01-01"`) {
		t.Error("start date override not rendered")
	}
}

func TestIndexHandler_NotFoundForOtherPaths(t *testing.T) {
	handler := NewIndexHandler(silent(), analysisDefaults())

	req := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
