package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/smartmandi/inference/internal/domain"
)

// DefaultFeatures is the declared feature list used when no features file exists
var DefaultFeatures = []string{
	"days_left", "stock_level", "demand_score",
	"category_encoded", "season_encoded", "weekday_encoded",
}

// LoaderConfig names the artifacts to load and the schema the pricing model
// must have been trained on
type LoaderConfig struct {
	PricingPath   string
	DemandPath    string
	FeaturesPath  string
	PricingSchema []string
}

// Set is one consistent generation of loaded models
type Set struct {
	Pricing  *LinearModel
	Demand   *LinearModel
	Features []string
	LoadedAt time.Time
}

// Loader reads model artifacts from a source
type Loader struct {
	source domain.ArtifactSource
	config LoaderConfig
}

// NewLoader creates a new model loader
func NewLoader(source domain.ArtifactSource, config LoaderConfig) *Loader {
	return &Loader{
		source: source,
		config: config,
	}
}

// Load reads both models and the features file. Any model failure is
// reported as domain.ErrModelLoad.
func (l *Loader) Load(ctx context.Context) (*Set, error) {
	pricing, err := l.loadModel(ctx, l.config.PricingPath)
	if err != nil {
		return nil, err
	}

	if len(l.config.PricingSchema) > 0 {
		if pricing.Width() != len(l.config.PricingSchema) {
			return nil, fmt.Errorf("%w: pricing model %q expects %d features, encoder produces %d",
				domain.ErrModelLoad, pricing.Name, pricing.Width(), len(l.config.PricingSchema))
		}
		if len(pricing.FeatureNames) > 0 && !slices.Equal(pricing.FeatureNames, l.config.PricingSchema) {
			return nil, fmt.Errorf("%w: pricing model %q feature order differs from encoder schema",
				domain.ErrModelLoad, pricing.Name)
		}
	}

	demand, err := l.loadModel(ctx, l.config.DemandPath)
	if err != nil {
		return nil, err
	}

	features, err := l.LoadFeatures(ctx)
	if err != nil {
		return nil, err
	}

	log.Printf("[Models] Loaded pricing=%q (%d features), demand=%q", pricing.Name, pricing.Width(), demand.Name)

	return &Set{
		Pricing:  pricing,
		Demand:   demand,
		Features: features,
		LoadedAt: time.Now(),
	}, nil
}

// LoadFeatures reads the declared feature list, falling back to
// DefaultFeatures when the file does not exist
func (l *Loader) LoadFeatures(ctx context.Context) ([]string, error) {
	if l.config.FeaturesPath == "" {
		return DefaultFeatures, nil
	}

	rc, err := l.source.Open(ctx, l.config.FeaturesPath)
	if err != nil {
		if errors.Is(err, domain.ErrArtifactNotFound) {
			log.Printf("[Models] Features file %s not found, using default features", l.config.FeaturesPath)
			return DefaultFeatures, nil
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrModelLoad, err)
	}
	defer rc.Close()

	var doc struct {
		Features []string `json:"features"`
	}
	if err := json.NewDecoder(rc).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: features file %s: %v", domain.ErrModelLoad, l.config.FeaturesPath, err)
	}

	return doc.Features, nil
}

func (l *Loader) loadModel(ctx context.Context, path string) (*LinearModel, error) {
	rc, err := l.source.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrModelLoad, path, err)
	}
	defer rc.Close()

	m, err := DecodeLinearModel(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrModelLoad, path, err)
	}
	return m, nil
}

// PricingModel implements domain.ModelProvider
func (s *Set) PricingModel(ctx context.Context) (domain.PricingModel, error) {
	if s == nil || s.Pricing == nil {
		return nil, domain.ErrModelNotLoaded
	}
	return s.Pricing, nil
}

// DemandModel implements domain.ModelProvider
func (s *Set) DemandModel(ctx context.Context) (domain.DemandModel, error) {
	if s == nil || s.Demand == nil {
		return nil, domain.ErrModelNotLoaded
	}
	return s.Demand, nil
}

// Describe implements domain.ModelCatalog
func (s *Set) Describe(ctx context.Context) (*domain.ModelInfo, error) {
	if s == nil || s.Pricing == nil || s.Demand == nil {
		return nil, domain.ErrModelNotLoaded
	}
	return &domain.ModelInfo{
		PricingModel:     s.Pricing.Name,
		PricingFeatures:  s.Pricing.Width(),
		DemandModel:      s.Demand.Name,
		DeclaredFeatures: s.Features,
		LoadedAt:         s.LoadedAt.Format(time.RFC3339),
	}, nil
}
