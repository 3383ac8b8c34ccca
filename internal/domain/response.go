package domain

import "fmt"

// Response is the JSON object written back to the caller
type Response map[string]interface{}

// ErrorResponse builds the top-level error shape used for input and dispatch
// failures. It intentionally differs from the handler failure envelope.
func ErrorResponse(message string) Response {
	return Response{"error": message}
}

// DemandResponse builds the demand envelope. A non-nil err yields the failure
// shape with an empty prediction list.
func DemandResponse(batch *DemandBatch, err error) Response {
	if err != nil {
		return Response{
			"success":     false,
			"error":       err.Error(),
			"predictions": []DemandResult{},
		}
	}

	predictions := batch.Predictions
	if predictions == nil {
		predictions = []DemandResult{}
	}

	return Response{
		"success":           true,
		"predictions":       predictions,
		"total_predictions": len(predictions),
		"forecast_period":   fmt.Sprintf("%d days", batch.ForecastDays),
	}
}

// PricingResponse builds the pricing envelope. A non-nil err yields the
// failure shape with an empty recommendation list.
func PricingResponse(batch *PricingBatch, err error) Response {
	if err != nil {
		return Response{
			"success":         false,
			"error":           err.Error(),
			"recommendations": []PriceRecommendation{},
		}
	}

	recommendations := batch.Recommendations
	if recommendations == nil {
		recommendations = []PriceRecommendation{}
	}

	return Response{
		"success":               true,
		"recommendations":       recommendations,
		"total_recommendations": len(recommendations),
	}
}

// UnknownOperationResponse is the top-level error for an unrecognised operation
func UnknownOperationResponse(operation string) Response {
	return ErrorResponse(fmt.Sprintf("Unknown operation: %s", operation))
}
