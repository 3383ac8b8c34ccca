// Package app builds the concrete dependencies shared by the CLI and the
// HTTP server from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/smartmandi/inference/config"
	"github.com/smartmandi/inference/internal/domain"
	"github.com/smartmandi/inference/internal/infrastructure/blob"
	"github.com/smartmandi/inference/internal/infrastructure/model"
	"github.com/smartmandi/inference/internal/usecase"
)

// NewArtifactSource returns the model artifact source selected by
// models.source
func NewArtifactSource(ctx context.Context, cfg *config.Config) (domain.ArtifactSource, error) {
	switch cfg.Models.Source {
	case "file":
		return blob.NewFileSource(cfg.Models.Dir), nil
	case "s3":
		source, err := blob.NewS3Source(ctx, blob.S3Config{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			Prefix:         cfg.S3.Prefix,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			return nil, err
		}
		return source, nil
	default:
		return nil, fmt.Errorf("unsupported models source: %s", cfg.Models.Source)
	}
}

// NewModelLoader wires a loader that checks the pricing model against the
// encoder schema
func NewModelLoader(ctx context.Context, cfg *config.Config) (*model.Loader, error) {
	source, err := NewArtifactSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return model.NewLoader(source, model.LoaderConfig{
		PricingPath:   cfg.Models.PricingPath,
		DemandPath:    cfg.Models.DemandPath,
		FeaturesPath:  cfg.Models.FeaturesPath,
		PricingSchema: usecase.PricingSchema(),
	}), nil
}

// NewPredictionService wires the prediction service over models
func NewPredictionService(cfg *config.Config, models domain.ModelProvider) *usecase.PredictionService {
	return usecase.NewPredictionService(models, usecase.PredictionServiceConfig{
		DefaultForecastDays: &cfg.Forecast.DefaultDays,
		DefaultCities:       cfg.Forecast.DefaultCities,
		DemandConfidence:    cfg.Forecast.DemandConfidence,
		PricingConfidence:   cfg.Forecast.PricingConfidence,
		Validity:            cfg.Forecast.Validity,
		Holidays:            cfg.Forecast.Holidays,
	})
}
