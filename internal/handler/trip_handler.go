package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/IH-honnette/urban-mobility-summatives/internal/metrics"
	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
	"github.com/IH-honnette/urban-mobility-summatives/internal/service"
	"github.com/IH-honnette/urban-mobility-summatives/pkg/response"
)

// TripHandler handles HTTP requests for trip queries
type TripHandler struct {
	service   *service.TripService
	collector *metrics.Collector
}

// NewTripHandler creates a new trip handler
func NewTripHandler(service *service.TripService, collector *metrics.Collector) *TripHandler {
	return &TripHandler{service: service, collector: collector}
}

// GetTrips handles GET /api/v1/trips
func (h *TripHandler) GetTrips(c *gin.Context) {
	var filter models.TripFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}

	page, err := h.service.GetTrips(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.collector != nil {
		h.collector.QueriesServed.WithLabelValues("trips").Inc()
	}
	c.JSON(200, page)
}
