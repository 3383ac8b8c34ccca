package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartmandi/inference/internal/domain"
	"github.com/smartmandi/inference/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	dispatcher *usecase.Dispatcher
	catalog    domain.ModelCatalog
}

// NewHandler creates a new HTTP handler
func NewHandler(dispatcher *usecase.Dispatcher, catalog domain.ModelCatalog) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		catalog:    catalog,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "smartmandi-inference",
		"version": "1.0.0",
	})
}

// Predict runs the operation named in the path against the JSON body.
// The body of the response matches what the CLI prints, HTML left unescaped.
func (h *Handler) Predict(c *gin.Context) {
	operation := c.Param("operation")
	if !h.dispatcher.Supports(operation) {
		c.PureJSON(http.StatusNotFound, domain.UnknownOperationResponse(operation))
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.PureJSON(http.StatusBadRequest, domain.ErrorResponse(fmt.Sprintf("failed to read body: %v", err)))
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		c.PureJSON(http.StatusBadRequest, domain.ErrorResponse("No input data provided"))
		return
	}

	decoded, err := usecase.DecodeRequest(body)
	if err != nil {
		c.PureJSON(http.StatusBadRequest, domain.ErrorResponse(fmt.Sprintf("JSON decode error from body: %v", err)))
		return
	}

	response, err := h.dispatcher.Dispatch(c.Request.Context(), operation, decoded)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrUnknownOperation) {
			status = http.StatusNotFound
		}
		c.PureJSON(status, domain.ErrorResponse(err.Error()))
		return
	}

	c.PureJSON(http.StatusOK, response)
}

// ModelFeatures reports the encoder schema next to the loaded models
func (h *Handler) ModelFeatures(c *gin.Context) {
	info, err := h.catalog.Describe(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, domain.ErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"schema": usecase.PricingSchema(),
		"models": info,
	})
}
