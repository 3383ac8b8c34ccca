package domain

import "context"

// ModelInfo describes the currently loaded model generation
type ModelInfo struct {
	PricingModel     string   `json:"pricing_model"`
	PricingFeatures  int      `json:"pricing_features"`
	DemandModel      string   `json:"demand_model"`
	DeclaredFeatures []string `json:"declared_features"`
	LoadedAt         string   `json:"loaded_at"`
}

// ModelCatalog reports what models are being served
type ModelCatalog interface {
	Describe(ctx context.Context) (*ModelInfo, error)
}
