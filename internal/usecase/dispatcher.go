package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/smartmandi/inference/internal/domain"
)

// Predictor runs the two prediction operations
type Predictor interface {
	PredictDemand(ctx context.Context, request *domain.PredictionRequest) (*domain.DemandBatch, error)
	PredictPricing(ctx context.Context, request *domain.PredictionRequest) (*domain.PricingBatch, error)
}

// Dispatcher routes an operation name to its handler and wraps the result
// in the response envelope
type Dispatcher struct {
	predictor Predictor
}

// NewDispatcher creates a dispatcher over predictor
func NewDispatcher(predictor Predictor) *Dispatcher {
	return &Dispatcher{predictor: predictor}
}

// Supports reports whether operation is a known operation name
func (d *Dispatcher) Supports(operation string) bool {
	return operation == domain.OperationPredictDemand || operation == domain.OperationPredictPricing
}

// Dispatch runs operation against a decoded JSON payload. Shape and
// handler failures are folded into the returned envelope; only an unknown
// operation returns an error.
func (d *Dispatcher) Dispatch(ctx context.Context, operation string, payload interface{}) (domain.Response, error) {
	switch operation {
	case domain.OperationPredictDemand:
		var batch *domain.DemandBatch
		request, err := parseRequest(payload)
		if err == nil {
			batch, err = d.predictor.PredictDemand(ctx, request)
		}
		if err != nil {
			log.Printf("[Dispatch] %s failed: %v", operation, err)
		}
		return domain.DemandResponse(batch, err), nil
	case domain.OperationPredictPricing:
		var batch *domain.PricingBatch
		request, err := parseRequest(payload)
		if err == nil {
			batch, err = d.predictor.PredictPricing(ctx, request)
		}
		if err != nil {
			log.Printf("[Dispatch] %s failed: %v", operation, err)
		}
		return domain.PricingResponse(batch, err), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownOperation, operation)
	}
}

func parseRequest(payload interface{}) (*domain.PredictionRequest, error) {
	request, err := domain.ParseRequest(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPrediction, err)
	}
	return request, nil
}

// DecodeRequest checks that payload is well-formed JSON and returns the
// decoded value. Whether it has the shape of a request is decided per
// operation by Dispatch.
func DecodeRequest(payload []byte) (interface{}, error) {
	var decoded interface{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, &domain.InputError{Detail: err.Error()}
	}
	return decoded, nil
}
