package domain

import (
	"context"
	"time"
)

// Review is one normalized review record as produced by upstream text
// processing. Immutable once loaded.
type Review struct {
	ProductID  string
	ReviewedAt time.Time
	Rating     float64
	ReviewerID string
	Text       string
	Summary    string
}

// ReviewSource loads review records from the backing dataset.
type ReviewSource interface {
	// LoadAll returns every parseable review in the dataset.
	LoadAll(ctx context.Context) ([]Review, error)
	// LoadProduct returns the reviews for a single product ID (exact,
	// case-insensitive match). An empty result is not an error.
	LoadProduct(ctx context.Context, productID string) ([]Review, error)
}
