// Package models defines data structures shared across the signal portal.
package models

// SignalType identifies the direction of a crossover signal.
type SignalType string

const (
	SignalBuy  SignalType = "Buy"
	SignalSell SignalType = "Sell"
)

// SignalRow is one moving-average crossover event as delivered by the
// analytics backend. Price and MA values arrive pre-formatted for display;
// GainValue/GainPercent are set only on Sell rows that close a buy cycle.
type SignalRow struct {
	Date        string     `json:"date"`
	SignalType  SignalType `json:"signal_type"`
	ClosePrice  string     `json:"close_price"`
	ShortMA     string     `json:"short_ma"`
	LongMA      string     `json:"long_ma"`
	GainValue   *string    `json:"gain_value"`
	GainPercent *string    `json:"gain_percent"`

	// Column labels repeated on every row; all rows of one dataset carry
	// the same pair.
	ShortHeader string `json:"short_header"`
	LongHeader  string `json:"long_header"`
}

// HasGain reports whether the row closes a buy cycle with a computed gain.
func (r SignalRow) HasGain() bool {
	return r.SignalType == SignalSell && r.GainValue != nil && r.GainPercent != nil
}

// TradeSummary aggregates completed buy-to-sell cycles for the current
// dataset. The gain and accuracy fields arrive pre-formatted ("$12.34",
// "56.00%", or "N/A" when no cycles exist).
type TradeSummary struct {
	TotalTradesDisplay int    `json:"total_trades_display"`
	AverageGainValue   string `json:"average_gain_value"`
	AverageGainPercent string `json:"average_gain_percent"`
	AccuracyRatePct    string `json:"accuracy_rate_percent"`
}

// StrategyResult holds the simulated outcome of one investment strategy.
type StrategyResult struct {
	FinalValue float64 `json:"final_value"`
	TotalGain  float64 `json:"total_gain"`
	ROI        float64 `json:"roi"`
}

// ComparisonSummary pairs the two strategy simulations with the sum they
// split. Each strategy received InitialSum / 2.
type ComparisonSummary struct {
	InitialSum float64        `json:"initial_sum"`
	Strategy1  StrategyResult `json:"strategy_1"`
	Strategy2  StrategyResult `json:"strategy_2"`
}

// SuggestionItem is one ticker autocomplete match.
type SuggestionItem struct {
	Ticker string `json:"Ticker"`
	Name   string `json:"Name"`
}

// AnalysisResult is the full payload returned by GET /api/analyze on the
// analytics backend: parallel chart arrays, the signal table with its trade
// metrics, and the two-strategy comparison.
type AnalysisResult struct {
	// Chart series (parallel arrays)
	Dates           []string  `json:"dates"`
	ClosePrices     []float64 `json:"close_prices"`
	ShortMAPrices   []float64 `json:"short_ma_prices"`
	LongMAPrices    []float64 `json:"long_ma_prices"`
	BuySignalDates  []string  `json:"buy_signal_dates"`
	BuySignalPrices []float64 `json:"buy_signal_prices"`
	SellSignalDates []string  `json:"sell_signal_dates"`
	SellSignalPrice []float64 `json:"sell_signal_prices"`

	// Window sizes echoed back for labels
	ShortMAPeriod int `json:"short_ma_period"`
	LongMAPeriod  int `json:"long_ma_period"`

	// Signal table and its metrics
	TableData          []SignalRow `json:"table_data"`
	AverageGainValue   string      `json:"average_gain_value"`
	AverageGainPercent string      `json:"average_gain_percent"`
	TotalTradesDisplay int         `json:"total_trades_display"`
	AccuracyRatePct    string      `json:"accuracy_rate_percent"`

	// Strategy comparison
	InitialSum float64        `json:"initial_sum"`
	Strategy1  StrategyResult `json:"strategy_1"`
	Strategy2  StrategyResult `json:"strategy_2"`
}

// TradeSummary extracts the table-level trade metrics from the payload.
func (a *AnalysisResult) TradeSummary() TradeSummary {
	return TradeSummary{
		TotalTradesDisplay: a.TotalTradesDisplay,
		AverageGainValue:   a.AverageGainValue,
		AverageGainPercent: a.AverageGainPercent,
		AccuracyRatePct:    a.AccuracyRatePct,
	}
}

// ComparisonSummary extracts the strategy comparison from the payload.
func (a *AnalysisResult) ComparisonSummary() ComparisonSummary {
	return ComparisonSummary{
		InitialSum: a.InitialSum,
		Strategy1:  a.Strategy1,
		Strategy2:  a.Strategy2,
	}
}
