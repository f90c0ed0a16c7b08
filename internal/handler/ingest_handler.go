package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/IH-honnette/urban-mobility-summatives/internal/pipeline"
	"github.com/IH-honnette/urban-mobility-summatives/pkg/response"
)

// IngestHandler accepts raw record uploads and runs them through the
// ingestion pipeline.
type IngestHandler struct {
	orchestrator *pipeline.Orchestrator
	maxRecords   int
}

// NewIngestHandler creates a new ingest handler. maxRecords bounds one
// upload; <= 0 means unbounded.
func NewIngestHandler(orchestrator *pipeline.Orchestrator, maxRecords int) *IngestHandler {
	return &IngestHandler{orchestrator: orchestrator, maxRecords: maxRecords}
}

// Ingest handles POST /api/v1/ingest. The request body is a CSV file in the
// raw trip export layout; the response is the ingestion summary including
// the rejection log.
func (h *IngestHandler) Ingest(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file upload: "+err.Error())
		return
	}
	defer file.Close()

	records, err := pipeline.ReadRawRecords(file, h.maxRecords)
	if err != nil {
		response.BadRequest(c, "malformed CSV: "+err.Error())
		return
	}

	summary, err := h.orchestrator.Run(c.Request.Context(), records)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, summary)
}
