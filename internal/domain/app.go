package domain

import "context"

// Product is one known product for listings.
type Product struct {
	ID   string `json:"product_id"`
	Name string `json:"name"`
}

// ProductSummary pairs the historical and forecast summaries for a product.
// SentimentTrend and RatingTrend are deliberately distinct: the first is the
// direction of the weekly sentiment series, the second of the weekly mean
// rating series. They measure different signals and frequently disagree.
type ProductSummary struct {
	ProductID      string          `json:"product_id"`
	DisplayName    string          `json:"product_name"`
	Classification TrendLabel      `json:"forecast_classification"`
	Historical     SeriesSummary   `json:"historical_summary"`
	Forecast       SeriesSummary   `json:"forecast_summary"`
	SentimentTrend SeriesDirection `json:"sentiment_trend"`
	RatingTrend    SeriesDirection `json:"rating_trend"`
}

// AppService is the application layer consumed by the HTTP server.
type AppService interface {
	// Resolve maps a raw identifier or display name to a canonical product
	// ID. Unmatched input falls back to its normalized form as an ID
	// candidate; whether the dataset knows it surfaces at initialization.
	// Returns ErrProductNotFound only for empty input.
	Resolve(raw string) (string, error)
	// EnsureReady initializes the product's cache entry if absent.
	// Concurrent calls for the same ID share one computation.
	EnsureReady(ctx context.Context, productID string) error
	// RefreshAll recomputes every product in the dataset and atomically
	// replaces the cache contents.
	RefreshAll(ctx context.Context) (int, error)
	// GetForecast returns the Ready forecast entry, or ErrNotReady.
	GetForecast(productID string) (*ForecastEntry, error)
	// GetSentiment returns the Ready weekly sentiment series, or ErrNotReady.
	GetSentiment(productID string) (WeeklySeries, error)
	// GetSummary builds the summary record from the Ready entry.
	GetSummary(productID string) (*ProductSummary, error)
	// Products lists all known products with display names.
	Products() []Product
}
