// Package summary reduces a weekly series to a fixed-shape descriptive record.
package summary

import (
	"math"

	"github.com/pscheid92/reviewpulse/internal/domain"
)

// dateFormat is the ISO date form used for min/max positions on the wire.
const dateFormat = "2006-01-02"

// Analyze builds the summary record for a series. The series is assumed
// chronologically sorted; "latest" is simply the final element. NaN points
// (weeks with no reviews) are ignored for the aggregates but a trailing NaN
// still makes the last defined value "latest".
//
// An empty series (or one with no defined values) yields a sentinel no-data
// record carrying only the label and message.
func Analyze(series domain.WeeklySeries, label string) domain.SeriesSummary {
	defined := make(domain.WeeklySeries, 0, len(series))
	for _, p := range series {
		if !math.IsNaN(p.Value) {
			defined = append(defined, p)
		}
	}

	if len(defined) == 0 {
		return domain.SeriesSummary{
			Label:   label,
			Empty:   true,
			Message: "No data available for " + label,
			Trend:   domain.DirectionStable,
		}
	}

	minPoint, maxPoint := defined[0], defined[0]
	var sum float64
	for _, p := range defined {
		sum += p.Value
		if p.Value < minPoint.Value {
			minPoint = p
		}
		if p.Value > maxPoint.Value {
			maxPoint = p
		}
	}

	latest := defined[len(defined)-1].Value

	prediction := "Likely Negative"
	if latest > 0 {
		prediction = "Likely Positive"
	}

	return domain.SeriesSummary{
		Label:      label,
		Average:    sum / float64(len(defined)),
		Latest:     latest,
		Min:        domain.SeriesExtreme{Value: minPoint.Value, Date: minPoint.Week.Format(dateFormat)},
		Max:        domain.SeriesExtreme{Value: maxPoint.Value, Date: maxPoint.Week.Format(dateFormat)},
		Trend:      Direction(defined),
		Prediction: prediction,
	}
}

// Direction is the deliberately cheap two-point trend: sign of last minus
// first defined value. Not a regression; a single-element series is Stable.
func Direction(series domain.WeeklySeries) domain.SeriesDirection {
	defined := make(domain.WeeklySeries, 0, len(series))
	for _, p := range series {
		if !math.IsNaN(p.Value) {
			defined = append(defined, p)
		}
	}
	if len(defined) < 2 {
		return domain.DirectionStable
	}

	slope := defined[len(defined)-1].Value - defined[0].Value
	switch {
	case slope > 0:
		return domain.DirectionIncreasing
	case slope < 0:
		return domain.DirectionDecreasing
	default:
		return domain.DirectionStable
	}
}
