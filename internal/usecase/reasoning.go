package usecase

import "github.com/smartmandi/inference/internal/domain"

// Recommendation reasons. Explain always returns one of these.
const (
	ReasonHighDemand      = "High demand detected - price increase recommended"
	ReasonLowStock        = "Low stock levels - price increase to manage demand"
	ReasonMarketIncrease  = "Market conditions favor price increase"
	ReasonNearingExpiry   = "Product nearing expiry - price reduction to clear stock"
	ReasonHighInventory   = "High inventory levels - price reduction to boost sales"
	ReasonMarketReduction = "Market conditions favor price reduction"
	ReasonOptimal         = "Current price is optimal"
)

// Thresholds for the reasoning rules
const (
	highDemandScore    = 70
	lowStockLevel      = 50
	nearExpiryDays     = 2
	highInventoryLevel = 200
)

// Explain derives the justification for moving from currentPrice to
// predictedPrice. Rules are checked in priority order.
func Explain(product domain.ProductRecord, predictedPrice, currentPrice float64) string {
	switch {
	case predictedPrice > currentPrice:
		if product.DemandScoreValue() > highDemandScore {
			return ReasonHighDemand
		}
		if product.StockLevelValue() < lowStockLevel {
			return ReasonLowStock
		}
		return ReasonMarketIncrease
	case predictedPrice < currentPrice:
		if product.DaysLeftValue() <= nearExpiryDays {
			return ReasonNearingExpiry
		}
		if product.StockLevelValue() > highInventoryLevel {
			return ReasonHighInventory
		}
		return ReasonMarketReduction
	default:
		return ReasonOptimal
	}
}
