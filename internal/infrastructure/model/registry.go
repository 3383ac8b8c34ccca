package model

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/smartmandi/inference/internal/domain"
	"golang.org/x/sync/singleflight"
)

const activeSetKey = "models:active"

// Registry keeps the active model set in a cache and reloads it from the
// loader once the entry expires. Concurrent misses share one load. Used by
// the long-lived server.
type Registry struct {
	loader *Loader
	cache  domain.CacheRepository
	ttl    time.Duration
	group  singleflight.Group
}

// NewRegistry creates a registry. A zero ttl defaults to one hour.
func NewRegistry(loader *Loader, cache domain.CacheRepository, ttl time.Duration) *Registry {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &Registry{
		loader: loader,
		cache:  cache,
		ttl:    ttl,
	}
}

// Current returns the active model set, loading it on a cache miss
func (r *Registry) Current(ctx context.Context) (*Set, error) {
	if set, ok := r.cached(ctx); ok {
		return set, nil
	}

	value, err, _ := r.group.Do(activeSetKey, func() (interface{}, error) {
		// A load that finished since our lookup already refreshed the cache
		if set, ok := r.cached(ctx); ok {
			return set, nil
		}

		set, err := r.loader.Load(ctx)
		if err != nil {
			return nil, err
		}

		if err := r.cache.Set(ctx, activeSetKey, set, r.ttl); err != nil {
			log.Printf("[Models] Failed to cache model set: %v", err)
		}
		return set, nil
	})
	if err != nil {
		return nil, err
	}

	return value.(*Set), nil
}

// Warm loads the models eagerly so startup fails fast on broken artifacts
func (r *Registry) Warm(ctx context.Context) error {
	_, err := r.Current(ctx)
	return err
}

// PricingModel implements domain.ModelProvider
func (r *Registry) PricingModel(ctx context.Context) (domain.PricingModel, error) {
	set, err := r.Current(ctx)
	if err != nil {
		return nil, err
	}
	return set.PricingModel(ctx)
}

// DemandModel implements domain.ModelProvider
func (r *Registry) DemandModel(ctx context.Context) (domain.DemandModel, error) {
	set, err := r.Current(ctx)
	if err != nil {
		return nil, err
	}
	return set.DemandModel(ctx)
}

// Describe implements domain.ModelCatalog
func (r *Registry) Describe(ctx context.Context) (*domain.ModelInfo, error) {
	set, err := r.Current(ctx)
	if err != nil {
		return nil, err
	}
	return set.Describe(ctx)
}

func (r *Registry) cached(ctx context.Context) (*Set, bool) {
	value, err := r.cache.Get(ctx, activeSetKey)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			log.Printf("[Models] Cache lookup failed: %v", err)
		}
		return nil, false
	}

	set, ok := value.(*Set)
	if !ok {
		log.Printf("[Models] Unexpected cached value of type %T", value)
		return nil, false
	}
	return set, true
}
