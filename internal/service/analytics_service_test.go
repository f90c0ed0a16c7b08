package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
	"github.com/IH-honnette/urban-mobility-summatives/internal/repository"
)

func newAnalyticsService(t *testing.T, trips int) *AnalyticsService {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig()
	if trips > 0 {
		ingestFixture(t, db, cfg, trips)
	}
	return NewAnalyticsService(repository.NewAnalyticsRepository(db), cfg)
}

func TestGetStats(t *testing.T) {
	svc := newAnalyticsService(t, 12)

	resp, err := svc.GetStats()
	require.NoError(t, err)

	assert.Equal(t, int64(12), resp.Overview.TotalTrips)
	assert.Equal(t, 10.0, resp.Overview.AvgDurationMinutes)
	assert.Equal(t, "2016-03-01 00:15:00", resp.Overview.DataPeriod.EarliestTrip)
	assert.Equal(t, "2016-03-01 11:15:00", resp.Overview.DataPeriod.LatestTrip)

	// Vendors alternate per record, six trips each.
	require.Len(t, resp.VendorDistribution, 2)
	for _, v := range resp.VendorDistribution {
		assert.Equal(t, int64(6), v.TripCount)
		assert.Equal(t, 50.0, v.MarketShare)
	}

	// One trip per hour: every peak-hour bucket ties at one trip, so the
	// hour-ascending tiebreak gives hours 0..4.
	require.Len(t, resp.PeakHours, 5)
	for i, p := range resp.PeakHours {
		assert.Equal(t, i, p.Hour)
		assert.Equal(t, int64(1), p.TripCount)
	}
}

func TestGetStatsEmptyDataset(t *testing.T) {
	svc := newAnalyticsService(t, 0)

	resp, err := svc.GetStats()
	require.NoError(t, err)
	assert.Zero(t, resp.Overview.TotalTrips)
	assert.Zero(t, resp.Overview.AvgSpeedKmh)
	assert.Empty(t, resp.Overview.DataPeriod.EarliestTrip)
	assert.Empty(t, resp.VendorDistribution)
	assert.Empty(t, resp.PeakHours)
}

func TestGetHourlyDistribution(t *testing.T) {
	svc := newAnalyticsService(t, 12)

	dist, err := svc.GetHourlyDistribution(models.RangeFilter{})
	require.NoError(t, err)
	for hour := 0; hour < 12; hour++ {
		assert.Equal(t, int64(1), dist[hour])
	}
	for hour := 12; hour < 24; hour++ {
		assert.Zero(t, dist[hour])
	}

	windowed, err := svc.GetHourlyDistribution(models.RangeFilter{
		Start: "2016-03-01 03:00:00",
		End:   "2016-03-01 05:59:59",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), windowed[3])
	assert.Zero(t, windowed[0])
	assert.Zero(t, windowed[6])

	_, err = svc.GetHourlyDistribution(models.RangeFilter{Start: "garbage"})
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestGetWeeklyPattern(t *testing.T) {
	svc := newAnalyticsService(t, 12)

	pattern, err := svc.GetWeeklyPattern()
	require.NoError(t, err)
	// All fixture trips fall on 2016-03-01, a Tuesday (weekday 2).
	require.Len(t, pattern, 1)
	assert.Equal(t, 2, pattern[0].Weekday)
	assert.Equal(t, int64(12), pattern[0].TripCount)
}

func TestGetMobilityInsights(t *testing.T) {
	svc := newAnalyticsService(t, 12)

	insights, err := svc.GetMobilityInsights()
	require.NoError(t, err)

	require.Len(t, insights.HourlyPatterns, 12)
	assert.Equal(t, 0, insights.HourlyPatterns[0].Hour)

	m := insights.EfficiencyMetrics
	assert.Equal(t, int64(12), m.TotalTrips)
	// Fixture trips all run ~13 km/h: none fast, none slow.
	assert.Zero(t, m.FastTripsCount)
	assert.Zero(t, m.SlowTripsCount)
	assert.Zero(t, m.FastTripsPercentage)
	assert.Greater(t, m.OverallAvgSpeedKmh, 10.0)

	assert.NotEmpty(t, insights.MostEfficientZones)
	for _, z := range insights.MostEfficientZones {
		assert.GreaterOrEqual(t, z.TripCount, int64(2))
	}
}

func TestGetMobilityInsightsEmptyDataset(t *testing.T) {
	svc := newAnalyticsService(t, 0)

	insights, err := svc.GetMobilityInsights()
	require.NoError(t, err)
	assert.Empty(t, insights.HourlyPatterns)
	assert.Zero(t, insights.EfficiencyMetrics.TotalTrips)
	assert.Empty(t, insights.MostEfficientZones)
}

func TestGetFareAnalysis(t *testing.T) {
	svc := newAnalyticsService(t, 12)

	analysis, err := svc.GetFareAnalysis(models.RangeFilter{})
	require.NoError(t, err)

	fs := analysis.FareStatistics
	assert.Greater(t, fs.AvgFareAmount, 0.0)
	assert.LessOrEqual(t, fs.MinFarePerKm, fs.AvgFarePerKm)
	assert.LessOrEqual(t, fs.AvgFarePerKm, fs.MaxFarePerKm)
	assert.Equal(t, 10.0, fs.AvgDurationMinutes)

	// All fixture trips run ~2.2km, one Medium bucket.
	require.Len(t, analysis.FareByDistance, 1)
	assert.Equal(t, "Medium (2-5km)", analysis.FareByDistance[0].DistanceCategory)
	assert.Equal(t, int64(12), analysis.FareByDistance[0].TripCount)

	assert.Len(t, analysis.SampleData, 12)

	limited, err := svc.GetFareAnalysis(models.RangeFilter{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, limited.SampleData, 3)
}

func TestGetFareAnalysisEmptyDataset(t *testing.T) {
	svc := newAnalyticsService(t, 0)

	analysis, err := svc.GetFareAnalysis(models.RangeFilter{})
	require.NoError(t, err)
	assert.Zero(t, analysis.FareStatistics.AvgFareAmount)
	assert.Zero(t, analysis.FareStatistics.FarePerKmStddev)
	assert.Empty(t, analysis.FareByDistance)
	assert.Empty(t, analysis.SampleData)
}

func TestGetVendorPerformance(t *testing.T) {
	svc := newAnalyticsService(t, 12)

	resp, err := svc.GetVendorPerformance()
	require.NoError(t, err)

	require.Len(t, resp.VendorPerformance, 2)
	// Equal volume: the name tiebreak puts Vendor_1 first.
	assert.Equal(t, "Vendor_1", resp.VendorPerformance[0].VendorName)
	assert.Equal(t, int64(6), resp.VendorPerformance[0].TotalTrips)

	assert.Equal(t, 2, resp.Insights.TotalVendors)
	assert.Equal(t, "Vendor_1", resp.Insights.MostActiveVendor)
	assert.NotEmpty(t, resp.Insights.FastestVendor)
	assert.NotEmpty(t, resp.Insights.MostEfficientVendor)
}

func TestGetVendorPerformanceEmptyDataset(t *testing.T) {
	svc := newAnalyticsService(t, 0)

	resp, err := svc.GetVendorPerformance()
	require.NoError(t, err)
	assert.Empty(t, resp.VendorPerformance)
	assert.Zero(t, resp.Insights.TotalVendors)
	assert.Empty(t, resp.Insights.MostActiveVendor)
}

// Analytics responses are byte-identical across repeated calls over an
// unchanged dataset.
func TestAnalyticsDeterministic(t *testing.T) {
	svc := newAnalyticsService(t, 12)

	first, err := svc.GetStats()
	require.NoError(t, err)
	second, err := svc.GetStats()
	require.NoError(t, err)
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)

	insights1, err := svc.GetMobilityInsights()
	require.NoError(t, err)
	insights2, err := svc.GetMobilityInsights()
	require.NoError(t, err)
	assert.Equal(t, insights1, insights2)

	fares1, err := svc.GetFareAnalysis(models.RangeFilter{})
	require.NoError(t, err)
	fares2, err := svc.GetFareAnalysis(models.RangeFilter{})
	require.NoError(t, err)
	assert.Equal(t, fares1, fares2)
}
