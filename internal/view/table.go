package view

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/bobmcallan/signal-portal/internal/common"
	"github.com/bobmcallan/signal-portal/internal/models"
)

// tableTemplate renders the signal table, the trade-metrics summary box, and
// the pagination controls as one fragment. The whole fragment is regenerated
// on every render.
var tableTemplate = template.Must(template.New("signal-table").Parse(`<h2 class="section-title">MA Crossover Signals (Historical Trading Points for Strategy 1)</h2>
<div class="table-scroll">
<table class="results-table">
<thead>
<tr>
<th scope="col">Date</th>
<th scope="col">Signal</th>
<th scope="col">Closing Price</th>
<th scope="col">{{.ShortHeader}}</th>
<th scope="col">{{.LongHeader}}</th>
<th scope="col">Gain (Buy to Sell Cycle)</th>
</tr>
</thead>
<tbody>
{{- range .Rows}}
<tr>
<td data-label="Date">{{.Date}}</td>
<td data-label="Signal" class="{{.SignalClass}}">{{.Signal}}</td>
<td data-label="Closing Price">{{.ClosePrice}}</td>
<td data-label="{{$.ShortHeader}}">{{.ShortMA}}</td>
<td data-label="{{$.LongHeader}}">{{.LongMA}}</td>
<td data-label="Gain">{{if .Gain}}<span class="{{.Gain.Class}}">{{.Gain.Value}} ({{.Gain.Percent}})</span>{{end}}</td>
</tr>
{{- end}}
</tbody>
</table>
</div>
{{- if .Summary}}
<div class="summary-box">
<h3 class="summary-title">Strategy 1 (MA Only) Trade Metrics ({{.Summary.TotalTrades}} Completed Cycles)</h3>
<div class="summary-item">
<span>Average Gain/Loss per Trade:</span>
<span class="{{.Summary.AvgGainClass}}">{{.Summary.AvgGainValue}} ({{.Summary.AvgGainPercent}})</span>
</div>
<div class="summary-item">
<span>Strategy Effectiveness (Accuracy Rate):</span>
<span class="{{.Summary.AccuracyClass}}">{{.Summary.AccuracyRate}}</span>
</div>
</div>
{{- else}}
<div class="summary-box"><p class="summary-item-info">No completed Buy-to-Sell cycles found for detailed trade metrics.</p></div>
{{- end}}
<div id="pagination-controls">
<button id="prev-btn" data-dir="prev"{{if .PrevDisabled}} disabled{{end}}>Previous</button>
<span id="page-info">Page {{.CurrentPage}} of {{.TotalPages}} (Total signals: {{.TotalSignals}})</span>
<button id="next-btn" data-dir="next"{{if .NextDisabled}} disabled{{end}}>Next</button>
</div>
`))

type tableGainCell struct {
	Class   common.Class
	Value   string
	Percent string
}

type tableRowData struct {
	Date        string
	Signal      string
	SignalClass string
	ClosePrice  string
	ShortMA     string
	LongMA      string
	Gain        *tableGainCell
}

type tableSummaryData struct {
	TotalTrades    int
	AvgGainValue   string
	AvgGainPercent string
	AvgGainClass   common.Class
	AccuracyRate   string
	AccuracyClass  common.Class
}

type tableTemplateData struct {
	ShortHeader  string
	LongHeader   string
	Rows         []tableRowData
	Summary      *tableSummaryData
	CurrentPage  int
	TotalPages   int
	TotalSignals int
	PrevDisabled bool
	NextDisabled bool
}

// RenderTable produces the signal table fragment for the pager's current page
// plus the trade summary box and pagination controls. An empty dataset
// renders nothing at all rather than an empty table.
func RenderTable(pager *Pager, summary models.TradeSummary) (string, error) {
	rows := pager.Rows()
	if len(rows) == 0 {
		return "", nil
	}

	data := tableTemplateData{
		ShortHeader:  rows[0].ShortHeader,
		LongHeader:   rows[0].LongHeader,
		CurrentPage:  pager.CurrentPage(),
		TotalPages:   pager.TotalPages(),
		TotalSignals: pager.Len(),
		PrevDisabled: pager.IsFirstPage(),
		NextDisabled: pager.IsLastPage(),
	}

	for _, row := range pager.CurrentSlice() {
		rd := tableRowData{
			Date:        row.Date,
			Signal:      strings.ToUpper(string(row.SignalType)),
			SignalClass: fmt.Sprintf("signal-%s", row.SignalType),
			ClosePrice:  row.ClosePrice,
			ShortMA:     row.ShortMA,
			LongMA:      row.LongMA,
		}
		if row.HasGain() {
			rd.Gain = &tableGainCell{
				Class:   common.ClassifyFormatted(*row.GainValue),
				Value:   *row.GainValue,
				Percent: *row.GainPercent,
			}
		}
		data.Rows = append(data.Rows, rd)
	}

	if summary.TotalTradesDisplay > 0 {
		data.Summary = &tableSummaryData{
			TotalTrades:    summary.TotalTradesDisplay,
			AvgGainValue:   summary.AverageGainValue,
			AvgGainPercent: summary.AverageGainPercent,
			AvgGainClass:   common.ClassifyFormatted(summary.AverageGainValue),
			AccuracyRate:   summary.AccuracyRatePct,
			AccuracyClass:  common.ClassifyFormatted(summary.AccuracyRatePct),
		}
	}

	var b strings.Builder
	if err := tableTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render signal table: %w", err)
	}
	return b.String(), nil
}
