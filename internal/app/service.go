package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/reviewpulse/internal/aggregate"
	"github.com/pscheid92/reviewpulse/internal/cache"
	"github.com/pscheid92/reviewpulse/internal/domain"
	"github.com/pscheid92/reviewpulse/internal/forecast"
	"github.com/pscheid92/reviewpulse/internal/metrics"
	"github.com/pscheid92/reviewpulse/internal/sentiment"
	"github.com/pscheid92/reviewpulse/internal/summary"
	"golang.org/x/sync/singleflight"
)

const (
	triggerLazy = "lazy"
	triggerBulk = "bulk"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Service orchestrates the load/score/aggregate/forecast pipeline and owns
// the product cache. It implements domain.AppService.
type Service struct {
	source  domain.ReviewSource
	scorer  *sentiment.Scorer
	engine  domain.Forecaster
	cache   *cache.ProductCache
	horizon int

	fitTimeout time.Duration

	initGroup singleflight.Group
	// refreshMu makes bulk refresh mutually exclusive with per-product
	// initialization: a lazy init racing a wholesale cache swap could
	// reinsert an entry computed from pre-refresh data.
	refreshMu sync.RWMutex

	clock           clockwork.Clock
	refreshInterval time.Duration
	refreshStopCh   chan struct{}
	stopOnce        sync.Once
}

// NewService creates the application layer service. A refreshInterval of
// zero disables the periodic background refresh.
func NewService(source domain.ReviewSource, scorer *sentiment.Scorer, engine domain.Forecaster, productCache *cache.ProductCache, horizon int, fitTimeout, refreshInterval time.Duration, clock clockwork.Clock) *Service {
	s := &Service{
		source:          source,
		scorer:          scorer,
		engine:          engine,
		cache:           productCache,
		horizon:         horizon,
		fitTimeout:      fitTimeout,
		clock:           clock,
		refreshInterval: refreshInterval,
		refreshStopCh:   make(chan struct{}),
	}

	if refreshInterval > 0 {
		s.startRefreshTimer()
	}
	return s
}

// WarmKnownProducts scans the dataset once so that identifiers and display
// names resolve before any product is initialized. A failed scan degrades to
// the static seed table rather than aborting startup.
func (s *Service) WarmKnownProducts(ctx context.Context) int {
	reviews, err := s.source.LoadAll(ctx)
	if err != nil {
		slog.Warn("Could not scan dataset at startup, seeding static product table", "error", err)
		for id, name := range seedNames {
			s.cache.RegisterKnown(id, name)
		}
		return len(seedNames)
	}

	names := aggregate.DisplayNames(reviews)
	seen := make(map[string]struct{})
	for _, r := range reviews {
		if _, ok := seen[r.ProductID]; ok {
			continue
		}
		seen[r.ProductID] = struct{}{}

		name := names[r.ProductID]
		if name == "" {
			name = seedNames[r.ProductID]
		}
		s.cache.RegisterKnown(r.ProductID, name)
	}

	slog.Info("Scanned dataset for known products", "products", len(seen), "reviews", len(reviews))
	return len(seen)
}

// Resolve maps a raw identifier or display name to a canonical product ID.
// Input that matches nothing still passes through in normalized form; the
// dataset decides at initialization whether such a product exists.
func (s *Service) Resolve(raw string) (string, error) {
	if id, ok := s.cache.Resolve(raw); ok {
		return id, nil
	}
	if id := cache.Normalize(raw); id != "" {
		return id, nil
	}
	return "", domain.ErrProductNotFound
}

// EnsureReady initializes the product's cache entry if absent. Concurrent
// calls for the same ID collapse into one pipeline run via singleflight.
func (s *Service) EnsureReady(ctx context.Context, productID string) error {
	id := cache.Normalize(productID)
	if id == "" {
		return domain.ErrProductNotFound
	}
	if s.cache.Ready(id) {
		return nil
	}

	_, err, _ := s.initGroup.Do(id, func() (any, error) {
		s.refreshMu.RLock()
		defer s.refreshMu.RUnlock()

		// A refresh or an earlier singleflight winner may have filled the
		// entry while we waited.
		if s.cache.Ready(id) {
			return nil, nil
		}

		start := s.clock.Now()
		snap, err := s.initProduct(ctx, id)
		if err != nil {
			metrics.InitializationsTotal.WithLabelValues(triggerLazy, outcomeFailure).Inc()
			return nil, err
		}

		s.cache.Put(snap.Forecast, snap.Sentiment, snap.Rating)
		metrics.InitializationsTotal.WithLabelValues(triggerLazy, outcomeSuccess).Inc()
		metrics.InitializationDuration.WithLabelValues(triggerLazy).Observe(s.clock.Since(start).Seconds())
		slog.InfoContext(ctx, "Product initialized",
			"product_id", id,
			"weeks", len(snap.Sentiment),
			"forecast_points", len(snap.Forecast.Forecast))
		return nil, nil
	})
	return err
}

// RefreshAll recomputes every product in the dataset and swaps the cache
// contents atomically. Returns the number of products refreshed.
func (s *Service) RefreshAll(ctx context.Context) (int, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := s.clock.Now()
	reviews, err := s.source.LoadAll(ctx)
	if err != nil {
		metrics.InitializationsTotal.WithLabelValues(triggerBulk, outcomeFailure).Inc()
		return 0, err
	}
	if len(reviews) == 0 {
		metrics.InitializationsTotal.WithLabelValues(triggerBulk, outcomeFailure).Inc()
		return 0, domain.ErrNoReviews
	}

	byProduct := make(map[string][]domain.Review)
	for _, r := range reviews {
		byProduct[r.ProductID] = append(byProduct[r.ProductID], r)
	}

	// Stage every snapshot before touching the cache so readers never see
	// a half-refreshed state.
	staged := make(map[string]*cache.Snapshot, len(byProduct))
	for id, productReviews := range byProduct {
		if err := ctx.Err(); err != nil {
			metrics.InitializationsTotal.WithLabelValues(triggerBulk, outcomeFailure).Inc()
			return 0, err
		}
		staged[id] = s.compute(ctx, id, productReviews)
	}
	s.cache.ReplaceAll(staged)

	metrics.InitializationsTotal.WithLabelValues(triggerBulk, outcomeSuccess).Inc()
	metrics.InitializationDuration.WithLabelValues(triggerBulk).Observe(s.clock.Since(start).Seconds())
	slog.InfoContext(ctx, "Bulk refresh complete", "products", len(staged), "reviews", len(reviews))
	return len(staged), nil
}

// initProduct runs the pipeline for a single product.
func (s *Service) initProduct(ctx context.Context, id string) (*cache.Snapshot, error) {
	reviews, err := s.source.LoadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNoReviews)
	}
	return s.compute(ctx, id, reviews), nil
}

// compute scores, aggregates, and forecasts one product's reviews. A short
// or unfittable history yields an empty forecast series, never an error.
func (s *Service) compute(ctx context.Context, id string, reviews []domain.Review) *cache.Snapshot {
	scored := make([]aggregate.ScoredReview, len(reviews))
	for i, r := range reviews {
		scored[i] = aggregate.ScoredReview{Review: r, Sentiment: s.scorer.Score(r.Text).Combined}
	}

	series := aggregate.Aggregate(scored)[id]
	sentimentSeries := series[domain.MetricSentiment]
	ratingSeries := series[domain.MetricRating]

	name := aggregate.DisplayNames(reviews)[id]
	if name == "" {
		name = seedNames[id]
	}

	fitCtx, cancel := context.WithTimeout(ctx, s.fitTimeout)
	defer cancel()
	projected := s.engine.Forecast(fitCtx, sentimentSeries, s.horizon)

	entry := &domain.ForecastEntry{
		ProductID:   id,
		DisplayName: name,
		Historical:  sentimentSeries,
		Forecast:    projected,
		Smoothed:    forecast.Smooth(sentimentSeries, forecast.SmoothWindow),
	}
	return &cache.Snapshot{Forecast: entry, Sentiment: sentimentSeries, Rating: ratingSeries}
}

// GetForecast returns the Ready forecast entry, or domain.ErrNotReady.
func (s *Service) GetForecast(productID string) (*domain.ForecastEntry, error) {
	return s.cache.Forecast(productID)
}

// GetSentiment returns the Ready weekly sentiment series, or domain.ErrNotReady.
func (s *Service) GetSentiment(productID string) (domain.WeeklySeries, error) {
	return s.cache.Sentiment(productID)
}

// GetSummary builds the summary record from the Ready entry.
func (s *Service) GetSummary(productID string) (*domain.ProductSummary, error) {
	entry, err := s.cache.Forecast(productID)
	if err != nil {
		return nil, err
	}
	sentimentSeries, err := s.cache.Sentiment(productID)
	if err != nil {
		return nil, err
	}
	ratingSeries, err := s.cache.Rating(productID)
	if err != nil {
		return nil, err
	}

	return &domain.ProductSummary{
		ProductID:      entry.ProductID,
		DisplayName:    s.cache.DisplayName(entry.ProductID),
		Classification: forecast.Classify(entry.Forecast),
		Historical:     summary.Analyze(sentimentSeries, "Historical"),
		Forecast:       summary.Analyze(entry.Forecast, "Forecast"),
		SentimentTrend: summary.Direction(sentimentSeries),
		RatingTrend:    summary.Direction(ratingSeries),
	}, nil
}

// Products lists all known products with display names.
func (s *Service) Products() []domain.Product {
	return s.cache.Products()
}

func (s *Service) startRefreshTimer() {
	ticker := s.clock.NewTicker(s.refreshInterval)
	go func() {
		for {
			select {
			case <-ticker.Chan():
				if _, err := s.RefreshAll(context.Background()); err != nil {
					slog.Error("Periodic refresh failed", "error", err)
				}
			case <-s.refreshStopCh:
				ticker.Stop()
				return
			}
		}
	}()
	slog.Info("Periodic refresh timer started", "interval", s.refreshInterval.String())
}

// Stop stops the periodic refresh timer. Safe to call multiple times.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.refreshStopCh)
	})
}
