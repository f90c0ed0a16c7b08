package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IH-honnette/urban-mobility-summatives/internal/handler"
	"github.com/IH-honnette/urban-mobility-summatives/internal/metrics"
	"github.com/IH-honnette/urban-mobility-summatives/internal/middleware"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Trips     *handler.TripHandler
	Analytics *handler.AnalyticsHandler
	Zones     *handler.ZoneHandler
	Ingest    *handler.IngestHandler
	Collector *metrics.Collector
}

// SetupRouter wires all routes
func SetupRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS for the dashboard frontend
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Urban Mobility API is running",
		})
	})

	if h.Collector != nil {
		r.GET("/metrics", gin.WrapH(h.Collector.Handler()))
	}

	api := r.Group("/api/v1")
	{
		api.GET("/trips", h.Trips.GetTrips)

		api.GET("/stats", h.Analytics.GetStats)
		api.GET("/hourly-distribution", h.Analytics.GetHourlyDistribution)
		api.GET("/weekly-pattern", h.Analytics.GetWeeklyPattern)
		api.GET("/mobility-insights", h.Analytics.GetMobilityInsights)
		api.GET("/fare-analysis", h.Analytics.GetFareAnalysis)
		api.GET("/vendor-performance", h.Analytics.GetVendorPerformance)
		api.GET("/busiest-zones", h.Analytics.GetBusiestZones)

		api.GET("/zones", h.Zones.GetZones)
		api.GET("/all-zones-with-counts", h.Analytics.GetZonesWithCounts)
		api.GET("/zones/:name", h.Zones.GetZoneByName)

		api.POST("/ingest", h.Ingest.Ingest)
	}

	return r
}
