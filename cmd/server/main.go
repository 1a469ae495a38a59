package main

import (
	"fmt"
	"log"
	"os"

	"github.com/platepulse/backend/config"
	httpDelivery "github.com/platepulse/backend/internal/delivery/http"
	"github.com/platepulse/backend/internal/infrastructure/cache"
	"github.com/platepulse/backend/internal/infrastructure/llm"
	"github.com/platepulse/backend/internal/infrastructure/localrank"
	"github.com/platepulse/backend/internal/infrastructure/places"
	"github.com/platepulse/backend/internal/infrastructure/webpage"
	"github.com/platepulse/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PlatePulse Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()

	placesClient := places.NewClient(cfg.Places.APIKey, cfg.Places.BaseURL)
	log.Printf("Places API configured: %s", cfg.Places.BaseURL)

	rankClient := localrank.NewClient(cfg.LocalRank.APIKey, cfg.LocalRank.BaseURL)
	if cfg.LocalRank.APIKey == "" {
		log.Printf("WARNING: local rank API key not set - rank lookups will degrade to warnings")
	}

	pageFetcher := webpage.NewFetcher(0)

	analysisClient := llm.NewClient(llm.Config{
		APIKey:        cfg.LLM.APIKey,
		BaseURL:       cfg.LLM.BaseURL,
		Model:         cfg.LLM.Model,
		FallbackModel: cfg.LLM.FallbackModel,
	})
	if cfg.LLM.APIKey == "" {
		log.Printf("WARNING: LLM API key not set - deep analysis will return a placeholder")
	} else {
		log.Printf("LLM configured: model=%s fallback=%s", cfg.LLM.Model, cfg.LLM.FallbackModel)
	}

	// Initialize usecase layer
	diagnosticService := usecase.NewDiagnosticService(
		memoryCache,
		placesClient,
		rankClient,
		pageFetcher,
		usecase.DiagnosticServiceConfig{
			CacheTTL:            cfg.Cache.TTL,
			MonthlySearchVolume: cfg.Revenue.MonthlySearchVolume,
			CTR:                 cfg.Revenue.CTR,
			ConversionRate:      cfg.Revenue.ConversionRate,
			AOV:                 cfg.Revenue.AOV,
		},
	)

	analysisService := usecase.NewAnalysisService(diagnosticService, analysisClient)

	log.Printf("Revenue model: volume=%d ctr=%.2f conv=%.2f aov=%.2f",
		cfg.Revenue.MonthlySearchVolume,
		cfg.Revenue.CTR,
		cfg.Revenue.ConversionRate,
		cfg.Revenue.AOV)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(diagnosticService, analysisService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
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
