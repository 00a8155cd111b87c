package forecast

import (
	"github.com/pscheid92/reviewpulse/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// SmoothWindow is the centered moving-average window for the diagnostic
// smoothed view of a historical series.
const SmoothWindow = 3

// Smooth returns a centered moving average of the series. Edge points where
// the window cannot be centered are omitted, so the result is shorter than
// the input by window-1 points. Purely diagnostic; independent of the
// forecast itself.
func Smooth(series domain.WeeklySeries, window int) domain.WeeklySeries {
	if window < 1 || len(series) < window {
		return nil
	}

	values := series.ZeroFilled().Values()
	half := window / 2

	out := make(domain.WeeklySeries, 0, len(series)-window+1)
	for i := half; i <= len(series)-1-half; i++ {
		out = append(out, domain.WeeklyPoint{
			Week:  series[i].Week,
			Value: stat.Mean(values[i-half:i+half+1], nil),
		})
	}
	return out
}
