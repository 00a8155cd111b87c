package domain

import (
	"math"
	"time"
)

// Metric names one aggregated weekly signal.
type Metric string

const (
	MetricSentiment Metric = "sentiment"
	MetricRating    Metric = "rating"
	MetricVolume    Metric = "volume"
)

// WeeklyPoint is one (week start, value) observation. Value may be NaN for
// weeks inside the observed span with no reviews; NaN serializes as null at
// the HTTP boundary.
type WeeklyPoint struct {
	Week  time.Time
	Value float64
}

// WeeklySeries is a chronologically ordered one-value-per-week series for a
// single product and metric.
type WeeklySeries []WeeklyPoint

// Values returns the raw values in series order.
func (s WeeklySeries) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// ZeroFilled returns a copy with NaN values replaced by zero. Forecast input
// needs a dense series; the cached sentiment series keeps its gaps.
func (s WeeklySeries) ZeroFilled() WeeklySeries {
	out := make(WeeklySeries, len(s))
	for i, p := range s {
		if math.IsNaN(p.Value) {
			p.Value = 0
		}
		out[i] = p
	}
	return out
}

// LastWeek returns the week of the final point, or the zero time for an
// empty series.
func (s WeeklySeries) LastWeek() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Week
}
