package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smartmandi/inference/config"
	"github.com/smartmandi/inference/internal/domain"
	"github.com/smartmandi/inference/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPricingModel always predicts the same price
type stubPricingModel float64

func (m stubPricingModel) Predict(rows [][]float64) ([]float64, error) {
	out := make([]float64, len(rows))
	for i := range rows {
		out[i] = float64(m)
	}
	return out, nil
}

// stubModels serves fixed models and a fixed description
type stubModels struct {
	pricing domain.PricingModel
	err     error
}

func (s *stubModels) PricingModel(ctx context.Context) (domain.PricingModel, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pricing, nil
}

func (s *stubModels) DemandModel(ctx context.Context) (domain.DemandModel, error) {
	return nil, s.err
}

func (s *stubModels) Describe(ctx context.Context) (*domain.ModelInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.ModelInfo{PricingModel: "stub-pricing", PricingFeatures: usecase.PricingFeatureCount}, nil
}

func setupTestRouter(models *stubModels) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:    config.ServerConfig{Environment: "test", AllowedOrigins: []string{"*"}},
		RateLimit: config.RateLimitConfig{PerIP: 0},
	}
	service := usecase.NewPredictionService(models, usecase.PredictionServiceConfig{})
	handler := NewHandler(usecase.NewDispatcher(service), models)
	return SetupRouter(cfg, handler)
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestHealthCheck(t *testing.T) {
	router := setupTestRouter(&stubModels{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "smartmandi-inference", body["service"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestPredictPricing(t *testing.T) {
	router := setupTestRouter(&stubModels{pricing: stubPricingModel(12.0)})

	w := postJSON(router, "/api/v1/predict/predict_pricing",
		`{"products":[{"product_id":"p1","category":"Dairy","demand_score":80,"current_price":10}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1.0, body["total_recommendations"])

	recs := body["recommendations"].([]interface{})
	rec := recs[0].(map[string]interface{})
	assert.Equal(t, "p1", rec["product_id"])
	assert.Equal(t, 12.0, rec["recommended_price"])
	assert.Equal(t, 20.0, rec["price_change_percentage"])
	assert.Equal(t, "High demand detected - price increase recommended", rec["recommendation_reason"])
}

func TestPredictDemand(t *testing.T) {
	router := setupTestRouter(&stubModels{})

	w := postJSON(router, "/api/v1/predict/predict_demand",
		`{"products":[{"product_id":"p1"}],"cities":["Mumbai"],"forecast_days":2}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 2.0, body["total_predictions"])
	assert.Equal(t, "2 days", body["forecast_period"])
	for _, p := range body["predictions"].([]interface{}) {
		assert.GreaterOrEqual(t, p.(map[string]interface{})["predicted_units"], 50.0)
	}
}

func TestPredictErrors(t *testing.T) {
	tests := []struct {
		name       string
		models     *stubModels
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "unknown operation",
			models:     &stubModels{},
			path:       "/api/v1/predict/foo",
			body:       `{}`,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Unknown operation: foo"}`,
		},
		{
			name:       "empty body",
			models:     &stubModels{},
			path:       "/api/v1/predict/predict_demand",
			body:       "  ",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"No input data provided"}`,
		},
		{
			name:       "wrongly typed products is a 200 envelope",
			models:     &stubModels{},
			path:       "/api/v1/predict/predict_demand",
			body:       `{"products":"abc"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"success":false,"error":"prediction failed: products must be a list, got string \"abc\"","predictions":[]}`,
		},
		{
			name:       "handler failure is a 200 envelope",
			models:     &stubModels{err: domain.ErrModelNotLoaded},
			path:       "/api/v1/predict/predict_pricing",
			body:       `{"products":[{}]}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"success":false,"error":"prediction failed: model not loaded","recommendations":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(setupTestRouter(tt.models), tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestPredictMalformedJSON(t *testing.T) {
	router := setupTestRouter(&stubModels{})

	w := postJSON(router, "/api/v1/predict/predict_pricing", `{"products": [`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Len(t, body, 1)
	assert.Contains(t, body["error"], "JSON decode error from body")
}

func TestModelFeatures(t *testing.T) {
	t.Run("loaded", func(t *testing.T) {
		router := setupTestRouter(&stubModels{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/models/features", nil))
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Len(t, body["schema"], 23)
		assert.Equal(t, "stub-pricing", body["models"].(map[string]interface{})["pricing_model"])
	})

	t.Run("unavailable", func(t *testing.T) {
		router := setupTestRouter(&stubModels{err: domain.ErrModelLoad})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/models/features", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"error":"model load failed"}`, w.Body.String())
	})
}
