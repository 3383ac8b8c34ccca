package usecase

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/smartmandi/inference/internal/domain"
)

// RandomSource yields uniform samples in [0, 1)
type RandomSource interface {
	Float64() float64
}

// RandomFunc adapts a plain function to RandomSource
type RandomFunc func() float64

// Float64 calls f
func (f RandomFunc) Float64() float64 {
	return f()
}

// Demand heuristic tables
var (
	categoryBaseDemand = map[string]float64{
		"Dairy":     150,
		"Bakery":    120,
		"Fruit":     100,
		"Vegetable": 180,
		"Meat":      80,
		"Snacks":    90,
		"Beverage":  110,
	}

	cityDemandFactors = map[string]float64{
		"Mumbai":    1.3,
		"Delhi":     1.2,
		"Bangalore": 1.1,
		"Chennai":   1.0,
		"Pune":      0.9,
	}
)

const (
	defaultBaseDemand = 100.0
	minPredictedUnits = 50
	weekendFactor     = 1.2
	winterFactor      = 1.1
	summerFactor      = 0.9
	jitterLow         = 0.8
	jitterSpan        = 0.4
)

// DemandEstimator forecasts unit demand from category, city and calendar
// multipliers with a random jitter that stands in for model uncertainty.
type DemandEstimator struct {
	random RandomSource
}

// NewDemandEstimator creates an estimator. A nil source uses the unseeded
// process-wide generator.
func NewDemandEstimator(random RandomSource) *DemandEstimator {
	if random == nil {
		random = RandomFunc(rand.Float64)
	}
	return &DemandEstimator{random: random}
}

// Estimate returns the predicted units for product in city on date, never
// less than 50.
func (e *DemandEstimator) Estimate(product domain.ProductRecord, city string, date time.Time) int {
	base, ok := categoryBaseDemand[product.CategoryValue()]
	if !ok {
		base = defaultBaseDemand
	}

	cityFactor, ok := cityDemandFactors[city]
	if !ok {
		cityFactor = 1.0
	}

	randomFactor := jitterLow + e.random.Float64()*jitterSpan

	units := int(math.Floor(base * cityFactor * weekdayFactor(date) * seasonFactor(date) * randomFactor))
	if units < minPredictedUnits {
		return minPredictedUnits
	}
	return units
}

// weekdayFactor boosts Friday through Sunday
func weekdayFactor(date time.Time) float64 {
	switch date.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return weekendFactor
	default:
		return 1.0
	}
}

func seasonFactor(date time.Time) float64 {
	switch date.Month() {
	case time.December, time.January, time.February:
		return winterFactor
	case time.April, time.May:
		return summerFactor
	default:
		return 1.0
	}
}
