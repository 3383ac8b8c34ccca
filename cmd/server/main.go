package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/smartmandi/inference/config"
	"github.com/smartmandi/inference/internal/app"
	httpDelivery "github.com/smartmandi/inference/internal/delivery/http"
	"github.com/smartmandi/inference/internal/infrastructure/cache"
	"github.com/smartmandi/inference/internal/infrastructure/model"
	"github.com/smartmandi/inference/internal/usecase"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting SmartMandi Inference Server v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Models: source=%s pricing=%s demand=%s reload=%s",
		cfg.Models.Source, cfg.Models.PricingPath, cfg.Models.DemandPath, cfg.Models.ReloadInterval)

	// Initialize infrastructure dependencies
	loader, err := app.NewModelLoader(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open model source: %v", err)
	}

	memoryCache := cache.NewMemoryCache(0)
	defer memoryCache.Close()

	registry := model.NewRegistry(loader, memoryCache, cfg.Models.ReloadInterval)

	// A server without models is useless; fail at startup, not on first request
	if err := registry.Warm(ctx); err != nil {
		log.Fatalf("Error loading models: %v", err)
	}

	// Initialize usecase layer
	service := app.NewPredictionService(cfg, registry)
	dispatcher := usecase.NewDispatcher(service)

	log.Printf("Forecast: days=%d cities=%v holidays=%d",
		cfg.Forecast.DefaultDays, cfg.Forecast.DefaultCities, len(cfg.Forecast.Holidays))

	handler := httpDelivery.NewHandler(dispatcher, registry)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
