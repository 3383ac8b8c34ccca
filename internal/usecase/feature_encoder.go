package usecase

import (
	"github.com/smartmandi/inference/internal/domain"
)

// One-hot vocabularies in training-time column order. The weekday block has
// no Friday column; the deployed pricing model expects exactly these six.
var (
	pricingCategories = []string{
		"Bakery", "Beverage", "Canned", "Cleaning", "Dairy", "Frozen",
		"Fruit", "Health", "Meat", "Pet", "Produce", "Snacks",
	}
	pricingSeasons  = []string{"Summer", "Winter"}
	pricingWeekdays = []string{"Monday", "Saturday", "Sunday", "Thursday", "Tuesday", "Wednesday"}
)

// pricingBaseFeatures are the numeric columns that precede the one-hot blocks
var pricingBaseFeatures = []string{"days_left", "stock_level", "demand_score"}

// PricingFeatureCount is the width of every pricing feature vector
var PricingFeatureCount = len(pricingBaseFeatures) + len(pricingCategories) + len(pricingSeasons) + len(pricingWeekdays)

// PricingSchema returns the ordered column names of the pricing feature vector
func PricingSchema() []string {
	schema := make([]string, 0, PricingFeatureCount)
	schema = append(schema, pricingBaseFeatures...)
	for _, c := range pricingCategories {
		schema = append(schema, "category_"+c)
	}
	for _, s := range pricingSeasons {
		schema = append(schema, "season_"+s)
	}
	for _, w := range pricingWeekdays {
		schema = append(schema, "weekday_"+w)
	}
	return schema
}

// EncodePricing maps a product to the pricing model's feature vector.
// Unrecognised categories, seasons and weekdays encode as an all-zero block.
func EncodePricing(product domain.ProductRecord) domain.FeatureVector {
	vector := make(domain.FeatureVector, 0, PricingFeatureCount)

	vector = append(vector,
		float64(product.DaysLeftValue()),
		float64(product.StockLevelValue()),
		float64(product.DemandScoreValue()),
	)

	vector = appendOneHot(vector, pricingCategories, product.CategoryValue())
	vector = appendOneHot(vector, pricingSeasons, product.SeasonValue())
	vector = appendOneHot(vector, pricingWeekdays, product.WeekdayValue())

	return vector
}

func appendOneHot(vector domain.FeatureVector, vocabulary []string, value string) domain.FeatureVector {
	for _, v := range vocabulary {
		if v == value {
			vector = append(vector, 1)
		} else {
			vector = append(vector, 0)
		}
	}
	return vector
}
