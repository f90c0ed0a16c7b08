package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IH-honnette/urban-mobility-summatives/internal/config"
	"github.com/IH-honnette/urban-mobility-summatives/internal/database"
	"github.com/IH-honnette/urban-mobility-summatives/internal/handler"
	"github.com/IH-honnette/urban-mobility-summatives/internal/metrics"
	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
	"github.com/IH-honnette/urban-mobility-summatives/internal/pipeline"
	"github.com/IH-honnette/urban-mobility-summatives/internal/repository"
	"github.com/IH-honnette/urban-mobility-summatives/internal/service"
)

const fixtureCSV = `id,vendor_id,pickup_datetime,dropoff_datetime,passenger_count,pickup_longitude,pickup_latitude,dropoff_longitude,dropoff_latitude,store_and_fwd_flag,trip_duration
id001,1,2016-03-14 17:24:55,2016-03-14 17:34:55,1,-74.0050,40.7000,-74.0050,40.7200,N,600
id002,2,2016-03-14 18:24:55,2016-03-14 18:34:55,2,-74.0050,40.7100,-74.0050,40.7300,N,600
id003,1,2016-03-14 19:24:55,2016-03-14 19:34:55,3,-74.0050,40.7200,-74.0050,40.7400,N,600
badrow,1,,2016-03-14 19:34:55,1,-74.0050,40.7200,-74.0050,40.7400,N,600
`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Load()
	collector := metrics.NewCollector()

	tripSvc := service.NewTripService(repository.NewTripRepository(db), cfg)
	analyticsSvc := service.NewAnalyticsService(repository.NewAnalyticsRepository(db), cfg)
	zoneSvc := service.NewZoneService(repository.NewZoneRepository(db))
	orchestrator := pipeline.NewOrchestrator(db, cfg, collector)

	return SetupRouter(Handlers{
		Trips:     handler.NewTripHandler(tripSvc, collector),
		Analytics: handler.NewAnalyticsHandler(analyticsSvc, collector),
		Zones:     handler.NewZoneHandler(zoneSvc),
		Ingest:    handler.NewIngestHandler(orchestrator, 0),
		Collector: collector,
	})
}

func doRequest(router *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func uploadCSV(t *testing.T, router *gin.Engine, csv string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "trips.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return doRequest(router, http.MethodPost, "/api/v1/ingest", &buf, mw.FormDataContentType())
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestIngestAndQueryFlow(t *testing.T) {
	router := newTestRouter(t)

	w := uploadCSV(t, router, fixtureCSV)
	require.Equal(t, http.StatusOK, w.Code)

	var summary models.IngestSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 4, summary.TotalRecords)
	assert.Equal(t, 3, summary.Accepted)
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, 1, summary.RejectedByReason[models.ReasonMissingField])

	w = doRequest(router, http.MethodGet, "/api/v1/trips?sort_by=fare_amount&sort_dir=asc", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var page models.TripsPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Data, 3)
	assert.NotEmpty(t, page.Data[0].VendorName)
	assert.NotEmpty(t, page.Data[0].PickupZone)

	w = doRequest(router, http.MethodGet, "/api/v1/stats", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats models.StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(3), stats.Overview.TotalTrips)
}

func TestTripsValidationStatus(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/trips?sort_by=nope", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/trips?page=-1", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestZoneEndpoints(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusOK, uploadCSV(t, router, fixtureCSV).Code)

	w := doRequest(router, http.MethodGet, "/api/v1/zones", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var zones []models.Zone
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &zones))
	require.NotEmpty(t, zones)

	w = doRequest(router, http.MethodGet, "/api/v1/zones/"+zones[0].ZoneName, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/zones/Zone_9999_9999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/all-zones-with-counts", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIngestMissingFile(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/ingest", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusOK, uploadCSV(t, router, fixtureCSV).Code)

	w := doRequest(router, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mobility_trips_accepted_total")
}
