package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/IH-honnette/urban-mobility-summatives/internal/service"
	"github.com/IH-honnette/urban-mobility-summatives/pkg/response"
)

// ZoneHandler handles HTTP requests for zones
type ZoneHandler struct {
	service *service.ZoneService
}

// NewZoneHandler creates a new zone handler
func NewZoneHandler(service *service.ZoneService) *ZoneHandler {
	return &ZoneHandler{service: service}
}

// GetZones handles GET /api/v1/zones
func (h *ZoneHandler) GetZones(c *gin.Context) {
	zones, err := h.service.GetZones()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, zones)
}

// GetZoneByName handles GET /api/v1/zones/:name
func (h *ZoneHandler) GetZoneByName(c *gin.Context) {
	zone, err := h.service.GetZoneByName(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	if zone == nil {
		response.NotFound(c, "zone not found")
		return
	}
	c.JSON(200, zone)
}
