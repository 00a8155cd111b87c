package forecast

import (
	"context"
	"math"

	"github.com/pscheid92/reviewpulse/internal/domain"
)

// HoltForecaster fits Holt's linear (additive trend, no seasonality)
// exponential smoothing. Smoothing parameters are chosen by grid search over
// one-step-ahead squared error, which is what the data sizes here need from
// an optimizer.
type HoltForecaster struct{}

var _ domain.Forecaster = (*HoltForecaster)(nil)

func (f *HoltForecaster) Name() string { return "holt" }

// Forecast projects horizon weekly points past the end of series. The input
// is zero-filled first: the fit needs a dense series.
func (f *HoltForecaster) Forecast(ctx context.Context, series domain.WeeklySeries, horizon int) domain.WeeklySeries {
	if len(series) < MinHistory {
		recordEmpty(reasonShortHistory)
		return nil
	}

	values := series.ZeroFilled().Values()

	level, trend, ok := fitHolt(ctx, values)
	if !ok {
		if ctx.Err() != nil {
			recordEmpty(reasonTimeout)
		} else {
			recordEmpty(reasonFitFailed)
		}
		return nil
	}

	out := make(domain.WeeklySeries, 0, horizon)
	week := series.LastWeek()
	for h := 1; h <= horizon; h++ {
		week = week.AddDate(0, 0, 7)
		value := level + float64(h)*trend
		if math.IsNaN(value) || math.IsInf(value, 0) {
			recordEmpty(reasonFitFailed)
			return nil
		}
		out = append(out, domain.WeeklyPoint{Week: week, Value: value})
	}
	return out
}

// fitHolt grid-searches alpha and beta in (0,1), returning the final level
// and trend of the best fit. Returns ok=false on cancellation or a
// degenerate fit.
func fitHolt(ctx context.Context, values []float64) (level, trend float64, ok bool) {
	bestSSE := math.Inf(1)
	found := false

	for alpha := 0.05; alpha < 1; alpha += 0.05 {
		if ctx.Err() != nil {
			return 0, 0, false
		}
		for beta := 0.05; beta < 1; beta += 0.05 {
			l, b, sse := runHolt(values, alpha, beta)
			if math.IsNaN(sse) || math.IsInf(sse, 0) {
				continue
			}
			if sse < bestSSE {
				bestSSE = sse
				level, trend = l, b
				found = true
			}
		}
	}

	return level, trend, found
}

// runHolt runs one pass of Holt's recursions, returning the final state and
// the one-step-ahead sum of squared errors.
func runHolt(values []float64, alpha, beta float64) (level, trend, sse float64) {
	level = values[0]
	trend = values[1] - values[0]

	for _, y := range values[1:] {
		predicted := level + trend
		err := y - predicted
		sse += err * err

		prevLevel := level
		level = alpha*y + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
	}
	return level, trend, sse
}
