package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/smartmandi/inference/internal/domain"
)

const forecastDateLayout = "2006-01-02"

// DefaultCities are forecast when a demand request names none
var DefaultCities = []string{"Mumbai", "Delhi", "Bangalore", "Chennai", "Pune"}

// PredictionServiceConfig holds configuration for the prediction service
type PredictionServiceConfig struct {
	DefaultForecastDays *int // nil means 7; zero is a valid horizon
	DefaultCities       []string
	DemandConfidence    float64
	PricingConfidence   float64
	Validity            time.Duration
	Holidays            []string // YYYY-MM-DD
	Random              RandomSource
	Now                 func() time.Time
}

// PredictionService expands requests into per-product results. Each batch is
// all or nothing: the first failing product aborts it.
type PredictionService struct {
	models              domain.ModelProvider
	estimator           *DemandEstimator
	pricing             *PricingPredictor
	defaultForecastDays int
	defaultCities       []string
	demandConfidence    float64
	holidays            map[string]bool
	now                 func() time.Time
}

// NewPredictionService creates a prediction service with dependencies
func NewPredictionService(models domain.ModelProvider, config PredictionServiceConfig) *PredictionService {
	forecastDays := 7
	if config.DefaultForecastDays != nil {
		forecastDays = *config.DefaultForecastDays
	}

	cities := config.DefaultCities
	if len(cities) == 0 {
		cities = DefaultCities
	}

	// Zero confidences are unset; configuration rejects them
	demandConfidence := config.DemandConfidence
	if demandConfidence == 0 {
		demandConfidence = 0.85
	}

	now := config.Now
	if now == nil {
		now = time.Now
	}

	holidays := make(map[string]bool, len(config.Holidays))
	for _, h := range config.Holidays {
		holidays[h] = true
	}

	return &PredictionService{
		models:    models,
		estimator: NewDemandEstimator(config.Random),
		pricing: NewPricingPredictor(PricingPredictorConfig{
			ConfidenceScore: config.PricingConfidence,
			Validity:        config.Validity,
			Now:             now,
		}),
		defaultForecastDays: forecastDays,
		defaultCities:       cities,
		demandConfidence:    demandConfidence,
		holidays:            holidays,
		now:                 now,
	}
}

// PredictDemand forecasts every product in every city for each of the next
// forecast_days days, in product, city, day order.
func (s *PredictionService) PredictDemand(ctx context.Context, request *domain.PredictionRequest) (*domain.DemandBatch, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: empty request", domain.ErrPrediction)
	}

	forecastDays := s.defaultForecastDays
	if request.ForecastDays != nil {
		forecastDays = *request.ForecastDays
	}

	cities := s.defaultCities
	if request.Cities != nil {
		cities = request.Cities
	}

	start := s.now()
	results := make([]domain.DemandResult, 0, len(request.Products)*len(cities)*max(forecastDays, 0))

	for i, raw := range request.Products {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrPrediction, err)
		}

		product, err := domain.ParseProduct(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: product %d: %w", domain.ErrPrediction, i, err)
		}

		for _, city := range cities {
			for day := 1; day <= forecastDays; day++ {
				date := start.AddDate(0, 0, day)
				results = append(results, domain.DemandResult{
					ProductID:       product.ProductID,
					ProductName:     product.ProductName,
					Category:        product.Category,
					City:            city,
					ForecastDate:    date.Format(forecastDateLayout),
					PredictedUnits:  s.estimator.Estimate(product, city, date),
					ConfidenceScore: s.demandConfidence,
					DayOfWeek:       date.Weekday().String(),
					Month:           int(date.Month()),
					Year:            date.Year(),
					HolidayFlag:     s.IsHoliday(date),
				})
			}
		}
	}

	log.Printf("[Predict] demand: %d products, %d cities, %d days -> %d predictions",
		len(request.Products), len(cities), forecastDays, len(results))

	return &domain.DemandBatch{
		Predictions:  results,
		ForecastDays: forecastDays,
	}, nil
}

// PredictPricing recommends a price for every product in request order
func (s *PredictionService) PredictPricing(ctx context.Context, request *domain.PredictionRequest) (*domain.PricingBatch, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: empty request", domain.ErrPrediction)
	}

	model, err := s.models.PricingModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPrediction, err)
	}

	results := make([]domain.PriceRecommendation, 0, len(request.Products))

	for i, raw := range request.Products {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrPrediction, err)
		}

		product, err := domain.ParseProduct(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: product %d: %w", domain.ErrPrediction, i, err)
		}

		recommendation, err := s.pricing.Predict(model, product)
		if err != nil {
			return nil, fmt.Errorf("%w: product %d: %w", domain.ErrPrediction, i, err)
		}

		results = append(results, *recommendation)
	}

	log.Printf("[Predict] pricing: %d recommendations", len(results))

	return &domain.PricingBatch{Recommendations: results}, nil
}

// IsHoliday reports whether date is one of the configured holidays
func (s *PredictionService) IsHoliday(date time.Time) bool {
	return s.holidays[date.Format(forecastDateLayout)]
}
