package main

import (
	"log"

	"github.com/IH-honnette/urban-mobility-summatives/internal/api"
	"github.com/IH-honnette/urban-mobility-summatives/internal/config"
	"github.com/IH-honnette/urban-mobility-summatives/internal/database"
	"github.com/IH-honnette/urban-mobility-summatives/internal/handler"
	"github.com/IH-honnette/urban-mobility-summatives/internal/metrics"
	"github.com/IH-honnette/urban-mobility-summatives/internal/pipeline"
	"github.com/IH-honnette/urban-mobility-summatives/internal/repository"
	"github.com/IH-honnette/urban-mobility-summatives/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Init(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	collector := metrics.NewCollector()

	tripRepo := repository.NewTripRepository(db)
	zoneRepo := repository.NewZoneRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	tripService := service.NewTripService(tripRepo, cfg)
	zoneService := service.NewZoneService(zoneRepo)
	analyticsService := service.NewAnalyticsService(analyticsRepo, cfg)

	orchestrator := pipeline.NewOrchestrator(db, cfg, collector)

	router := api.SetupRouter(api.Handlers{
		Trips:     handler.NewTripHandler(tripService, collector),
		Analytics: handler.NewAnalyticsHandler(analyticsService, collector),
		Zones:     handler.NewZoneHandler(zoneService),
		Ingest:    handler.NewIngestHandler(orchestrator, cfg.MaxRecords),
		Collector: collector,
	})

	log.Printf("Server starting on %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
