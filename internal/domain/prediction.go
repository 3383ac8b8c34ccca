package domain

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
)

// Operation names accepted by the dispatcher
const (
	OperationPredictDemand  = "predict_demand"
	OperationPredictPricing = "predict_pricing"
)

// PredictionRequest is the payload for both operations. Products stay raw so
// that field conversion errors surface inside the handler, not at decode time.
type PredictionRequest struct {
	Products     []map[string]interface{}
	ForecastDays *int
	Cities       []string
}

// ParseRequest shapes a decoded JSON payload into a PredictionRequest.
// The payload is valid JSON; a wrong shape is a prediction failure, not an
// input error, so callers wrap the error in ErrPrediction.
func ParseRequest(payload interface{}) (*PredictionRequest, error) {
	body, ok := payload.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("request must be a JSON object, got %s", jsonKind(payload))
	}

	var request PredictionRequest

	if raw, ok := body["products"]; ok {
		items, ok := raw.([]interface{})
		if !ok {
			return nil, fmt.Errorf("products must be a list, got %s", jsonKind(raw))
		}
		request.Products = make([]map[string]interface{}, 0, len(items))
		for i, item := range items {
			product, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("products[%d] must be an object, got %s", i, jsonKind(item))
			}
			request.Products = append(request.Products, product)
		}
	}

	if raw, ok := body["cities"]; ok {
		items, ok := raw.([]interface{})
		if !ok {
			return nil, fmt.Errorf("cities must be a list, got %s", jsonKind(raw))
		}
		request.Cities = make([]string, 0, len(items))
		for i, item := range items {
			city, err := cast.ToStringE(item)
			if err != nil || item == nil {
				return nil, fmt.Errorf("cities[%d] must be a string, got %s", i, jsonKind(item))
			}
			request.Cities = append(request.Cities, city)
		}
	}

	if raw, ok := body["forecast_days"]; ok {
		days, ok := raw.(float64)
		if !ok || days != math.Trunc(days) || math.Abs(days) > math.MaxInt32 {
			return nil, fmt.Errorf("forecast_days must be an integer, got %s", jsonKind(raw))
		}
		n := int(days)
		request.ForecastDays = &n
	}

	return &request, nil
}

// jsonKind names the JSON type of a value produced by encoding/json
func jsonKind(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return fmt.Sprintf("number %v", v)
	case string:
		return fmt.Sprintf("string %q", v)
	case []interface{}:
		return "list"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// FeatureVector is an ordered numeric encoding consumed by a model
type FeatureVector []float64

// DemandResult is the forecast for one product in one city on one day
type DemandResult struct {
	ProductID       *string `json:"product_id"`
	ProductName     *string `json:"product_name"`
	Category        *string `json:"category"`
	City            string  `json:"city"`
	ForecastDate    string  `json:"forecast_date"`
	PredictedUnits  int     `json:"predicted_units"`
	ConfidenceScore float64 `json:"confidence_score"`
	DayOfWeek       string  `json:"day_of_week"`
	Month           int     `json:"month"`
	Year            int     `json:"year"`
	HolidayFlag     bool    `json:"holiday_flag"`
}

// PriceRecommendation is the suggested price for one product
type PriceRecommendation struct {
	ProductID             *string `json:"product_id"`
	ProductName           *string `json:"product_name"`
	Category              *string `json:"category"`
	CurrentPrice          float64 `json:"current_price"`
	RecommendedPrice      float64 `json:"recommended_price"`
	PriceChangePercentage float64 `json:"price_change_percentage"`
	DemandScore           int     `json:"demand_score"`
	StockLevel            int     `json:"stock_level"`
	DaysLeft              int     `json:"days_left"`
	Weekday               string  `json:"weekday"`
	Season                string  `json:"season"`
	ConfidenceScore       float64 `json:"confidence_score"`
	RecommendationReason  string  `json:"recommendation_reason"`
	ValidUntil            string  `json:"valid_until"`
}

// DemandBatch is the complete result of one demand request
type DemandBatch struct {
	Predictions  []DemandResult
	ForecastDays int
}

// PricingBatch is the complete result of one pricing request
type PricingBatch struct {
	Recommendations []PriceRecommendation
}
