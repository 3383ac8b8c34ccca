package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/smartmandi/inference/config"
	"github.com/smartmandi/inference/internal/app"
	"github.com/smartmandi/inference/internal/delivery/cli"
	"github.com/smartmandi/inference/internal/domain"
	"github.com/smartmandi/inference/internal/usecase"
)

func main() {
	if len(os.Args) < 2 {
		if err := cli.WriteResponse(os.Stdout, domain.ErrorResponse("No operation specified")); err != nil {
			log.Printf("Failed to write response: %v", err)
		}
		return
	}

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	loader, err := app.NewModelLoader(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open model source: %v", err)
	}

	// Models are loaded once per invocation; there is no degraded mode
	models, err := loader.Load(ctx)
	if err != nil {
		log.Fatalf("Error loading models: %v", err)
	}
	log.Printf("Service initialized successfully")

	service := app.NewPredictionService(cfg, models)

	var stdin io.Reader
	if fd := os.Stdin.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		stdin = os.Stdin
	}

	runner := cli.NewRunner(usecase.NewDispatcher(service), os.Stdout)
	if err := runner.Run(ctx, os.Args[1:], stdin); err != nil {
		log.Fatalf("Exception occurred: %v", err)
	}
}

func init() {
	// stdout carries the JSON response only
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
