// Package chart assembles the price/signal chart payload handed to the
// charting collaborator. The portal prepares labeled series and layout
// configuration; drawing is the collaborator's job.
package chart

import (
	"fmt"

	"github.com/bobmcallan/signal-portal/internal/models"
)

// Marker configures signal point styling.
type Marker struct {
	Color  string `json:"color,omitempty"`
	Symbol string `json:"symbol,omitempty"`
	Size   int    `json:"size,omitempty"`
}

// Line configures line series styling.
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

// Trace is one labeled series: a price or MA line, or a buy/sell marker set.
type Trace struct {
	X      []string  `json:"x"`
	Y      []float64 `json:"y"`
	Type   string    `json:"type"`
	Mode   string    `json:"mode"`
	Name   string    `json:"name"`
	Line   *Line     `json:"line,omitempty"`
	Marker *Marker   `json:"marker,omitempty"`
}

// Axis labels one chart axis.
type Axis struct {
	Title string `json:"title"`
}

// Legend positions the chart legend.
type Legend struct {
	Orientation string  `json:"orientation"`
	X           float64 `json:"x"`
	XAnchor     string  `json:"xanchor"`
	Y           float64 `json:"y"`
}

// Layout carries the axis/legend configuration for one chart render.
type Layout struct {
	Title     string `json:"title"`
	XAxis     Axis   `json:"xaxis"`
	YAxis     Axis   `json:"yaxis"`
	HoverMode string `json:"hovermode"`
	Legend    Legend `json:"legend"`
}

// Payload is the complete chart hand-off: five traces plus layout. The
// collaborator clears any previous chart before drawing it.
type Payload struct {
	Traces []Trace `json:"traces"`
	Layout Layout  `json:"layout"`
}

// BuildPayload assembles the five chart series from the analysis response:
// the close price line, the two moving-average lines, and the buy/sell
// markers.
func BuildPayload(ticker string, result *models.AnalysisResult) Payload {
	traces := []Trace{
		{
			X: result.Dates, Y: result.ClosePrices,
			Type: "scatter", Mode: "lines", Name: "Closing Price",
			Line: &Line{Color: "#1f77b4", Width: 1.5},
		},
		{
			X: result.Dates, Y: result.LongMAPrices,
			Type: "scatter", Mode: "lines",
			Name: fmt.Sprintf("%d Week MA", result.LongMAPeriod),
			Line: &Line{Color: "#ff7f0e", Width: 2, Dash: "solid"},
		},
		{
			X: result.Dates, Y: result.ShortMAPrices,
			Type: "scatter", Mode: "lines",
			Name: fmt.Sprintf("%d Day MA", result.ShortMAPeriod),
			Line: &Line{Color: "#2ca02c", Width: 1.5, Dash: "dot"},
		},
		{
			X: result.BuySignalDates, Y: result.BuySignalPrices,
			Type: "scatter", Mode: "markers", Name: "Buy Signal",
			Marker: &Marker{Color: "green", Symbol: "triangle-up", Size: 10},
		},
		{
			X: result.SellSignalDates, Y: result.SellSignalPrice,
			Type: "scatter", Mode: "markers", Name: "Sell Signal",
			Marker: &Marker{Color: "red", Symbol: "triangle-down", Size: 10},
		},
	}

	return Payload{
		Traces: traces,
		Layout: Layout{
			Title:     fmt.Sprintf("%s Stock Price and MA Crossover Analysis", ticker),
			XAxis:     Axis{Title: "Date"},
			YAxis:     Axis{Title: "Price (USD)"},
			HoverMode: "x unified",
			Legend:    Legend{Orientation: "h", X: 0.5, XAnchor: "center", Y: -0.2},
		},
	}
}
