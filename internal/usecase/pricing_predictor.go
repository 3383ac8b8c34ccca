package usecase

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartmandi/inference/internal/domain"
)

const validUntilLayout = "2006-01-02 15:04:05"

// maxFractionDigits is enough to print any float64 exactly
const maxFractionDigits = 1074

// PricingPredictorConfig holds the constants attached to every recommendation
type PricingPredictorConfig struct {
	ConfidenceScore float64
	Validity        time.Duration
	Now             func() time.Time
}

// PricingPredictor turns raw pricing model output into bounded, explained
// recommendations
type PricingPredictor struct {
	confidence float64
	validity   time.Duration
	now        func() time.Time
}

// NewPricingPredictor creates a predictor with defaults for unset config
func NewPricingPredictor(config PricingPredictorConfig) *PricingPredictor {
	confidence := config.ConfidenceScore
	if confidence == 0 {
		confidence = 0.82
	}

	validity := config.Validity
	if validity == 0 {
		validity = 24 * time.Hour
	}

	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &PricingPredictor{
		confidence: confidence,
		validity:   validity,
		now:        now,
	}
}

// Predict encodes product, asks model for a price and post-processes it
func (p *PricingPredictor) Predict(model domain.PricingModel, product domain.ProductRecord) (*domain.PriceRecommendation, error) {
	if model == nil {
		return nil, domain.ErrModelNotLoaded
	}

	features := EncodePricing(product)

	output, err := model.Predict([][]float64{features})
	if err != nil {
		return nil, err
	}
	if len(output) == 0 {
		return nil, fmt.Errorf("pricing model returned no values")
	}

	predicted := output[0]
	if predicted < 0 {
		predicted = 0
	}

	current := product.CurrentPriceValue()
	change := 0.0
	if current > 0 {
		change = (predicted - current) / current * 100
	}

	now := p.now()
	weekday := now.Weekday().String()
	if product.Weekday != nil || product.WeekdayNull {
		weekday = product.WeekdayValue()
	}

	return &domain.PriceRecommendation{
		ProductID:             product.ProductID,
		ProductName:           product.ProductName,
		Category:              product.Category,
		CurrentPrice:          current,
		RecommendedPrice:      round2(predicted),
		PriceChangePercentage: round2(change),
		DemandScore:           product.DemandScoreValue(),
		StockLevel:            product.StockLevelValue(),
		DaysLeft:              product.DaysLeftValue(),
		Weekday:               weekday,
		Season:                product.SeasonValue(),
		ConfidenceScore:       p.confidence,
		RecommendationReason:  Explain(product, predicted, current),
		ValidUntil:            now.Add(p.validity).Format(validUntilLayout),
	}, nil
}

// round2 rounds the exact binary value of v to two places, ties to even.
// Rounding the shortest decimal form instead would turn 2.675 (stored as
// 2.67499...) into 2.68.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	exact := new(big.Float).SetFloat64(v).Text('f', maxFractionDigits)
	return decimal.RequireFromString(exact).RoundBank(2).InexactFloat64()
}
