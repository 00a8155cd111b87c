package forecast

import (
	"github.com/pscheid92/reviewpulse/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// Classification thresholds on the forecast mean. Boundary values classify
// as Stable: the comparisons are strict on both sides.
const (
	improveThreshold = 0.1
	declineThreshold = -0.1
)

// Classify reduces a forecast series to a trend label. Total over its input
// domain: an empty series maps to Insufficient data, everything else to one
// of the three trend labels.
func Classify(forecast domain.WeeklySeries) domain.TrendLabel {
	if len(forecast) == 0 {
		return domain.TrendInsufficient
	}

	mean := stat.Mean(forecast.Values(), nil)
	switch {
	case mean > improveThreshold:
		return domain.TrendImprove
	case mean < declineThreshold:
		return domain.TrendDecline
	default:
		return domain.TrendStable
	}
}
