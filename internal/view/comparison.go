package view

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/signal-portal/internal/common"
	"github.com/bobmcallan/signal-portal/internal/models"
)

// comparisonTemplate renders the aggregate portfolio card and the two
// strategy cards.
var comparisonTemplate = template.Must(template.New("comparison").Parse(`<h2 class="section-title">Strategy Comparison (Initial Sum: {{.InitialSum}})</h2>
<p class="summary-item-info">Investment split 50/50: {{.PerStrategy}} allocated to each strategy. Hybrid strategy profit target: {{.GrowthTarget}}.</p>
<div class="comparison-grid">
<div class="strategy-card strategy-card-total">
<h3>Total Portfolio Gain</h3>
<div class="metric-item"><span class="metric-label">Initial Sum</span> <span class="value-neutral">{{.InitialSum}}</span></div>
<div class="metric-item"><span class="metric-label">Final Value</span> <span class="{{.FinalValueClass}}">{{.FinalValue}}</span></div>
<div class="metric-item"><span class="metric-label">Total Gain/Loss</span> <span class="{{.TotalGainClass}}">{{.TotalGain}}</span></div>
<div class="metric-item"><span class="metric-label">Total ROI</span> <span class="{{.TotalROIClass}}">{{.TotalROI}}</span></div>
</div>
{{- range .Strategies}}
<div class="strategy-card">
<h3>{{.Title}}</h3>
<div class="metric-item"><span class="metric-label">Investment</span> <span class="value-neutral">{{$.PerStrategy}}</span></div>
<div class="metric-item"><span class="metric-label">Final Value</span> <span class="{{.FinalValueClass}}">{{.FinalValue}}</span></div>
<div class="metric-item"><span class="metric-label">Total Gain/Loss</span> <span class="{{.GainClass}}">{{.Gain}}</span></div>
<div class="metric-item"><span class="metric-label">Total ROI</span> <span class="{{.ROIClass}}">{{.ROI}}</span></div>
</div>
{{- end}}
</div>
`))

type strategyCardData struct {
	Title           string
	FinalValue      string
	FinalValueClass common.Class
	Gain            string
	GainClass       common.Class
	ROI             string
	ROIClass        common.Class
}

type comparisonTemplateData struct {
	InitialSum      string
	PerStrategy     string
	GrowthTarget    string
	FinalValue      string
	FinalValueClass common.Class
	TotalGain       string
	TotalGainClass  common.Class
	TotalROI        string
	TotalROIClass   common.Class
	Strategies      []strategyCardData
}

// ComparisonTotals holds the aggregate numbers derived from a
// ComparisonSummary. They are recomputed from the two strategy results on
// every render so they can never drift from the per-strategy numbers.
type ComparisonTotals struct {
	PerStrategy float64
	TotalGain   float64
	TotalROI    float64
	FinalValue  float64
}

// DeriveTotals computes the aggregate portfolio numbers from the two
// strategies. ROI uses decimal division to keep two-digit display stable.
func DeriveTotals(cs models.ComparisonSummary) ComparisonTotals {
	gain := decimal.NewFromFloat(cs.Strategy1.TotalGain).Add(decimal.NewFromFloat(cs.Strategy2.TotalGain))
	initial := decimal.NewFromFloat(cs.InitialSum)

	var roi decimal.Decimal
	if !initial.IsZero() {
		roi = gain.Div(initial).Mul(decimal.NewFromInt(100))
	}

	totalGain, _ := gain.Float64()
	totalROI, _ := roi.Float64()
	return ComparisonTotals{
		PerStrategy: cs.InitialSum / 2,
		TotalGain:   totalGain,
		TotalROI:    totalROI,
		FinalValue:  cs.InitialSum + totalGain,
	}
}

// RenderComparison produces the three-card strategy comparison fragment. The
// growth target is display-only and comes from the submitted form value.
func RenderComparison(cs models.ComparisonSummary, growthTarget float64) (string, error) {
	totals := DeriveTotals(cs)

	data := comparisonTemplateData{
		InitialSum:      common.FormatCurrency(cs.InitialSum),
		PerStrategy:     common.FormatCurrency(totals.PerStrategy),
		GrowthTarget:    common.FormatPercentage(growthTarget),
		FinalValue:      common.FormatCurrency(totals.FinalValue),
		FinalValueClass: common.ClassifyAmount(totals.FinalValue),
		TotalGain:       common.FormatCurrency(totals.TotalGain),
		TotalGainClass:  common.ClassifyAmount(totals.TotalGain),
		TotalROI:        common.FormatPercentage(totals.TotalROI),
		TotalROIClass:   common.ClassifyAmount(totals.TotalROI),
		Strategies: []strategyCardData{
			strategyCard("Strategy 1: MA Crossover (100% Invest)", cs.Strategy1),
			strategyCard("Strategy 2: Hybrid (50% Target, 50% MA)", cs.Strategy2),
		},
	}

	var b strings.Builder
	if err := comparisonTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render comparison summary: %w", err)
	}
	return b.String(), nil
}

func strategyCard(title string, s models.StrategyResult) strategyCardData {
	return strategyCardData{
		Title:           title,
		FinalValue:      common.FormatCurrency(s.FinalValue),
		FinalValueClass: common.ClassifyAmount(s.FinalValue),
		Gain:            common.FormatCurrency(s.TotalGain),
		GainClass:       common.ClassifyAmount(s.TotalGain),
		ROI:             common.FormatPercentage(s.ROI),
		ROIClass:        common.ClassifyAmount(s.ROI),
	}
}
