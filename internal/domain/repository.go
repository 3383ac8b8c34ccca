package domain

import (
	"context"
	"io"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// PricingModel is a pre-trained regressor mapping pricing feature rows to prices.
// It returns one value per input row.
type PricingModel interface {
	Predict(rows [][]float64) ([]float64, error)
}

// DemandModel is the learned demand forecaster. It is loaded alongside the
// pricing model, but demand is currently produced by the rule-based estimator.
type DemandModel interface {
	Predict(rows [][]float64) ([]float64, error)
}

// ArtifactSource opens stored model artifacts by path
type ArtifactSource interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// ModelProvider hands out the currently loaded models
type ModelProvider interface {
	PricingModel(ctx context.Context) (PricingModel, error)
	DemandModel(ctx context.Context) (DemandModel, error)
}
