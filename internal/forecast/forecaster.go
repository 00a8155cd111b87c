// Package forecast projects weekly sentiment series into the future.
//
// Two engines implement domain.Forecaster behind one pipeline: Holt
// exponential smoothing with an additive trend, and an additive linear
// decomposition. Both share the same degradation policy: fewer than
// MinHistory observations, a failed fit, or a context timeout all yield an
// empty series. Insufficient history is a normal outcome, not a fault.
package forecast

import (
	"fmt"

	"github.com/pscheid92/reviewpulse/internal/domain"
	"github.com/pscheid92/reviewpulse/internal/metrics"
)

// MinHistory is the minimum number of weekly observations an engine needs
// before it will attempt a fit.
const MinHistory = 6

const (
	reasonShortHistory = "short_history"
	reasonFitFailed    = "fit_failed"
	reasonTimeout      = "timeout"
)

// New returns the engine registered under name ("holt" or "decompose").
func New(name string) (domain.Forecaster, error) {
	switch name {
	case "holt":
		return &HoltForecaster{}, nil
	case "decompose":
		return &DecomposeForecaster{}, nil
	default:
		return nil, fmt.Errorf("unknown forecast engine %q", name)
	}
}

func recordEmpty(reason string) {
	metrics.ForecastEmptyTotal.WithLabelValues(reason).Inc()
}
