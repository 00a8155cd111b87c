package domain

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrNoReviews          = errors.New("no reviews for product")
	ErrDatasetUnavailable = errors.New("dataset unavailable")
	ErrNotReady           = errors.New("product not initialized")
)
