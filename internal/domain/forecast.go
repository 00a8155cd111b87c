package domain

import "context"

// TrendLabel classifies a forecast series.
type TrendLabel string

const (
	TrendImprove      TrendLabel = "Likely to improve"
	TrendDecline      TrendLabel = "Likely to decline"
	TrendStable       TrendLabel = "Stable"
	TrendInsufficient TrendLabel = "Insufficient data"
)

// ForecastEntry is the cache value for one product: the historical sentiment
// input, the projected future points, and an optional smoothed view of
// history for diagnostic display. Horizon and series lengths are fixed at
// creation; a refresh builds a new entry and swaps it in whole.
type ForecastEntry struct {
	ProductID   string
	DisplayName string
	Historical  WeeklySeries
	Forecast    WeeklySeries
	Smoothed    WeeklySeries
}

// Forecaster projects a weekly series into the future. Implementations
// return an empty series for histories shorter than their floor or when the
// fit fails; that is an expected outcome, not an error.
type Forecaster interface {
	Name() string
	Forecast(ctx context.Context, series WeeklySeries, horizon int) WeeklySeries
}
