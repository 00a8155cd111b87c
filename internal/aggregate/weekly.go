// Package aggregate folds scored reviews into per-product weekly series.
package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/pscheid92/reviewpulse/internal/domain"
)

// ScoredReview pairs a review with its hybrid sentiment score.
type ScoredReview struct {
	Review    domain.Review
	Sentiment float64
}

// week keeps running sums for one product-week bucket.
type bucket struct {
	sentimentSum float64
	ratingSum    float64
	count        int
}

// WeekStart returns the Monday 00:00 UTC starting the week containing t.
// Weeks run Monday through Sunday; every component in the pipeline buckets
// with this same function, or forecasts drift out of alignment.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -daysSinceMonday).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Aggregate groups scored reviews by product and calendar week, producing
// one series per metric:
//
//   - sentiment: weekly mean hybrid score; weeks inside the observed span
//     with no reviews carry NaN (undefined, serialized as null)
//   - rating: weekly mean rating; empty weeks are omitted
//   - volume: weekly review count; empty weeks count zero
//
// All series are sorted ascending by week start.
func Aggregate(reviews []ScoredReview) map[string]map[domain.Metric]domain.WeeklySeries {
	buckets := make(map[string]map[time.Time]*bucket)
	for _, sr := range reviews {
		id := sr.Review.ProductID
		if buckets[id] == nil {
			buckets[id] = make(map[time.Time]*bucket)
		}
		week := WeekStart(sr.Review.ReviewedAt)
		b := buckets[id][week]
		if b == nil {
			b = &bucket{}
			buckets[id][week] = b
		}
		b.sentimentSum += sr.Sentiment
		b.ratingSum += sr.Review.Rating
		b.count++
	}

	out := make(map[string]map[domain.Metric]domain.WeeklySeries, len(buckets))
	for id, weeks := range buckets {
		out[id] = buildSeries(weeks)
	}
	return out
}

func buildSeries(weeks map[time.Time]*bucket) map[domain.Metric]domain.WeeklySeries {
	span := weekSpan(weeks)

	var sentiment, rating, volume domain.WeeklySeries
	for _, week := range span {
		b, ok := weeks[week]
		if !ok {
			sentiment = append(sentiment, domain.WeeklyPoint{Week: week, Value: math.NaN()})
			volume = append(volume, domain.WeeklyPoint{Week: week, Value: 0})
			continue
		}
		n := float64(b.count)
		sentiment = append(sentiment, domain.WeeklyPoint{Week: week, Value: b.sentimentSum / n})
		rating = append(rating, domain.WeeklyPoint{Week: week, Value: b.ratingSum / n})
		volume = append(volume, domain.WeeklyPoint{Week: week, Value: n})
	}

	return map[domain.Metric]domain.WeeklySeries{
		domain.MetricSentiment: sentiment,
		domain.MetricRating:    rating,
		domain.MetricVolume:    volume,
	}
}

// weekSpan returns every week from the earliest to the latest observed
// bucket, inclusive, in ascending order.
func weekSpan(weeks map[time.Time]*bucket) []time.Time {
	if len(weeks) == 0 {
		return nil
	}

	observed := make([]time.Time, 0, len(weeks))
	for w := range weeks {
		observed = append(observed, w)
	}
	sort.Slice(observed, func(i, j int) bool { return observed[i].Before(observed[j]) })

	var span []time.Time
	for w := observed[0]; !w.After(observed[len(observed)-1]); w = w.AddDate(0, 0, 7) {
		span = append(span, w)
	}
	return span
}

// DisplayNames derives a human-readable name per product: the most frequent
// review summary text, falling back to the first one seen on ties.
func DisplayNames(reviews []domain.Review) map[string]string {
	type nameCount struct {
		name  string
		count int
		seen  int
	}
	counts := make(map[string]map[string]*nameCount)
	order := 0
	for _, r := range reviews {
		if r.Summary == "" {
			continue
		}
		if counts[r.ProductID] == nil {
			counts[r.ProductID] = make(map[string]*nameCount)
		}
		nc := counts[r.ProductID][r.Summary]
		if nc == nil {
			nc = &nameCount{name: r.Summary, seen: order}
			counts[r.ProductID][r.Summary] = nc
		}
		nc.count++
		order++
	}

	names := make(map[string]string, len(counts))
	for id, candidates := range counts {
		var best *nameCount
		for _, nc := range candidates {
			if best == nil || nc.count > best.count || (nc.count == best.count && nc.seen < best.seen) {
				best = nc
			}
		}
		names[id] = best.name
	}
	return names
}
