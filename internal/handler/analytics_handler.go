package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/IH-honnette/urban-mobility-summatives/internal/metrics"
	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
	"github.com/IH-honnette/urban-mobility-summatives/internal/service"
	"github.com/IH-honnette/urban-mobility-summatives/pkg/response"
)

// AnalyticsHandler handles HTTP requests for aggregate analytics
type AnalyticsHandler struct {
	service   *service.AnalyticsService
	collector *metrics.Collector
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service *service.AnalyticsService, collector *metrics.Collector) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, collector: collector}
}

func (h *AnalyticsHandler) served(endpoint string) {
	if h.collector != nil {
		h.collector.QueriesServed.WithLabelValues(endpoint).Inc()
	}
}

// GetStats handles GET /api/v1/stats
func (h *AnalyticsHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats()
	if err != nil {
		respondError(c, err)
		return
	}
	h.served("stats")
	c.JSON(200, stats)
}

// GetHourlyDistribution handles GET /api/v1/hourly-distribution
func (h *AnalyticsHandler) GetHourlyDistribution(c *gin.Context) {
	var rf models.RangeFilter
	if err := c.ShouldBindQuery(&rf); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}

	dist, err := h.service.GetHourlyDistribution(rf)
	if err != nil {
		respondError(c, err)
		return
	}
	h.served("hourly-distribution")
	c.JSON(200, dist)
}

// GetWeeklyPattern handles GET /api/v1/weekly-pattern
func (h *AnalyticsHandler) GetWeeklyPattern(c *gin.Context) {
	pattern, err := h.service.GetWeeklyPattern()
	if err != nil {
		respondError(c, err)
		return
	}
	h.served("weekly-pattern")
	c.JSON(200, pattern)
}

// GetMobilityInsights handles GET /api/v1/mobility-insights
func (h *AnalyticsHandler) GetMobilityInsights(c *gin.Context) {
	insights, err := h.service.GetMobilityInsights()
	if err != nil {
		respondError(c, err)
		return
	}
	h.served("mobility-insights")
	c.JSON(200, insights)
}

// GetFareAnalysis handles GET /api/v1/fare-analysis
func (h *AnalyticsHandler) GetFareAnalysis(c *gin.Context) {
	var rf models.RangeFilter
	if err := c.ShouldBindQuery(&rf); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}

	analysis, err := h.service.GetFareAnalysis(rf)
	if err != nil {
		respondError(c, err)
		return
	}
	h.served("fare-analysis")
	c.JSON(200, analysis)
}

// GetVendorPerformance handles GET /api/v1/vendor-performance
func (h *AnalyticsHandler) GetVendorPerformance(c *gin.Context) {
	perf, err := h.service.GetVendorPerformance()
	if err != nil {
		respondError(c, err)
		return
	}
	h.served("vendor-performance")
	c.JSON(200, perf)
}

// GetBusiestZones handles GET /api/v1/busiest-zones
func (h *AnalyticsHandler) GetBusiestZones(c *gin.Context) {
	zones, err := h.service.GetBusiestZones()
	if err != nil {
		respondError(c, err)
		return
	}
	h.served("busiest-zones")
	c.JSON(200, zones)
}

// GetZonesWithCounts handles GET /api/v1/all-zones-with-counts
func (h *AnalyticsHandler) GetZonesWithCounts(c *gin.Context) {
	zones, err := h.service.GetZonesWithCounts()
	if err != nil {
		respondError(c, err)
		return
	}
	h.served("zones-with-counts")
	c.JSON(200, zones)
}
