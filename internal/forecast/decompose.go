package forecast

import (
	"context"
	"math"

	"github.com/pscheid92/reviewpulse/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// DecomposeForecaster fits an additive decomposition: an ordinary least
// squares trend line plus the mean residual of the final observations. It is
// the more conservative engine; swap it in with FORECAST_ENGINE=decompose.
type DecomposeForecaster struct{}

var _ domain.Forecaster = (*DecomposeForecaster)(nil)

// residualTail is how many trailing residuals feed the level correction.
const residualTail = 3

func (f *DecomposeForecaster) Name() string { return "decompose" }

func (f *DecomposeForecaster) Forecast(ctx context.Context, series domain.WeeklySeries, horizon int) domain.WeeklySeries {
	if len(series) < MinHistory {
		recordEmpty(reasonShortHistory)
		return nil
	}
	if ctx.Err() != nil {
		recordEmpty(reasonTimeout)
		return nil
	}

	values := series.ZeroFilled().Values()
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}

	intercept, slope := stat.LinearRegression(xs, values, nil, false)
	if math.IsNaN(intercept) || math.IsNaN(slope) {
		recordEmpty(reasonFitFailed)
		return nil
	}

	// Mean residual over the tail re-anchors the trend line to recent level.
	var residual float64
	for i := len(values) - residualTail; i < len(values); i++ {
		residual += values[i] - (intercept + slope*float64(i))
	}
	residual /= residualTail

	out := make(domain.WeeklySeries, 0, horizon)
	week := series.LastWeek()
	n := float64(len(values))
	for h := 1; h <= horizon; h++ {
		week = week.AddDate(0, 0, 7)
		value := intercept + slope*(n-1+float64(h)) + residual
		if math.IsNaN(value) || math.IsInf(value, 0) {
			recordEmpty(reasonFitFailed)
			return nil
		}
		out = append(out, domain.WeeklyPoint{Week: week, Value: value})
	}
	return out
}
