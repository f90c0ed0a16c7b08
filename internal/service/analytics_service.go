package service

import (
	"math"

	"github.com/IH-honnette/urban-mobility-summatives/internal/config"
	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
	"github.com/IH-honnette/urban-mobility-summatives/internal/repository"
	"github.com/IH-honnette/urban-mobility-summatives/internal/stats"
)

// peakHoursLimit matches the original dashboard's top-5 peak hours panel
const peakHoursLimit = 5

// zoneRankingLimit bounds zone ranking responses
const zoneRankingLimit = 20

// efficientZonesLimit bounds the most-efficient-zones ranking
const efficientZonesLimit = 10

// AnalyticsService computes read-side aggregations over persisted trips.
// Every result is deterministic for a fixed dataset: orderings carry stable
// tiebreaks and all floats are rounded to two decimals.
type AnalyticsService struct {
	repo *repository.AnalyticsRepository
	cfg  *config.Config
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo *repository.AnalyticsRepository, cfg *config.Config) *AnalyticsService {
	return &AnalyticsService{repo: repo, cfg: cfg}
}

// GetStats returns the overview block, vendor distribution and peak hours
func (s *AnalyticsService) GetStats() (*models.StatsResponse, error) {
	ov, err := s.repo.Overview()
	if err != nil {
		return nil, err
	}

	vendors, err := s.repo.VendorDistribution()
	if err != nil {
		return nil, err
	}
	distribution := make([]models.VendorShare, 0, len(vendors))
	for _, v := range vendors {
		share := 0.0
		if ov.TotalTrips > 0 {
			share = round2(float64(v.TripCount) / float64(ov.TotalTrips) * 100)
		}
		distribution = append(distribution, models.VendorShare{
			VendorName:  v.VendorName,
			TripCount:   v.TripCount,
			MarketShare: share,
		})
	}

	peaks, err := s.repo.PeakHours(peakHoursLimit)
	if err != nil {
		return nil, err
	}
	for i := range peaks {
		peaks[i].AvgSpeedKmh = round2(peaks[i].AvgSpeedKmh)
		peaks[i].AvgFare = round2(peaks[i].AvgFare)
	}

	return &models.StatsResponse{
		Overview: models.Overview{
			TotalTrips:         ov.TotalTrips,
			AvgSpeedKmh:        round2(ov.AvgSpeedKmh),
			AvgFarePerKm:       round2(ov.AvgFarePerKm),
			AvgDurationMinutes: round2(ov.AvgDurationSecs / 60),
			AvgDistanceKm:      round2(ov.AvgDistanceKm),
			AvgFare:            round2(ov.AvgFare),
			DataPeriod: models.Period{
				EarliestTrip: ov.EarliestTrip,
				LatestTrip:   ov.LatestTrip,
			},
		},
		VendorDistribution: distribution,
		PeakHours:          peaks,
	}, nil
}

// GetHourlyDistribution returns trip counts for all 24 hours of day
func (s *AnalyticsService) GetHourlyDistribution(rf models.RangeFilter) ([24]int64, error) {
	start, end, err := normalizeRange(rf)
	if err != nil {
		return [24]int64{}, err
	}
	return s.repo.HourlyDistribution(start, end)
}

// GetWeeklyPattern returns trip counts grouped by day of week
func (s *AnalyticsService) GetWeeklyPattern() ([]models.WeekdayCount, error) {
	return s.repo.WeeklyPattern()
}

// GetMobilityInsights returns hourly movement patterns, speed-class
// efficiency metrics and the most efficient pickup zones.
func (s *AnalyticsService) GetMobilityInsights() (*models.MobilityInsights, error) {
	patterns, err := s.hourlyPatterns()
	if err != nil {
		return nil, err
	}

	eff, err := s.repo.EfficiencyCounts(s.cfg.FastSpeedKmh, s.cfg.SlowSpeedKmh)
	if err != nil {
		return nil, err
	}
	metrics := models.EfficiencyMetrics{
		OverallAvgSpeedKmh:  round2(eff.AvgSpeedKmh),
		OverallAvgFarePerKm: round2(eff.AvgFarePerKm),
		FastTripsCount:      eff.FastTrips,
		SlowTripsCount:      eff.SlowTrips,
		TotalTrips:          eff.TotalTrips,
	}
	if eff.TotalTrips > 0 {
		metrics.FastTripsPercentage = round2(float64(eff.FastTrips) / float64(eff.TotalTrips) * 100)
		metrics.SlowTripsPercentage = round2(float64(eff.SlowTrips) / float64(eff.TotalTrips) * 100)
	}

	zones, err := s.repo.EfficientZones(s.cfg.MinZoneTrips, efficientZonesLimit)
	if err != nil {
		return nil, err
	}
	for i := range zones {
		zones[i].AvgSpeedKmh = round2(zones[i].AvgSpeedKmh)
		zones[i].AvgFarePerKm = round2(zones[i].AvgFarePerKm)
		zones[i].AvgDistanceKm = round2(zones[i].AvgDistanceKm)
		zones[i].EfficiencyScore = round2(zones[i].EfficiencyScore)
	}

	return &models.MobilityInsights{
		HourlyPatterns:     patterns,
		EfficiencyMetrics:  metrics,
		MostEfficientZones: zones,
	}, nil
}

// GetBusiestZones returns pickup zones ranked by trip volume
func (s *AnalyticsService) GetBusiestZones() ([]models.ZoneCount, error) {
	return s.repo.BusiestZones(zoneRankingLimit)
}

// GetZonesWithCounts returns every zone with its pickup count
func (s *AnalyticsService) GetZonesWithCounts() ([]models.ZoneCount, error) {
	return s.repo.ZonesWithCounts()
}

// GetFareAnalysis returns fare economics over an optional datetime window:
// a statistics block, distance-category buckets and a bounded first-N sample.
func (s *AnalyticsService) GetFareAnalysis(rf models.RangeFilter) (*models.FareAnalysis, error) {
	start, end, err := normalizeRange(rf)
	if err != nil {
		return nil, err
	}

	agg, err := s.repo.FareAggregates(start, end)
	if err != nil {
		return nil, err
	}

	values, err := s.repo.FarePerKmValues(start, end)
	if err != nil {
		return nil, err
	}

	buckets, err := s.repo.FareByDistance(
		s.cfg.ShortDistanceKm, s.cfg.MediumDistanceKm, s.cfg.LongDistanceKm, start, end)
	if err != nil {
		return nil, err
	}
	for i := range buckets {
		buckets[i].AvgFare = round2(buckets[i].AvgFare)
		buckets[i].AvgFarePerKm = round2(buckets[i].AvgFarePerKm)
		buckets[i].AvgSpeedKmh = round2(buckets[i].AvgSpeedKmh)
	}

	limit := rf.Limit
	if limit <= 0 || limit > s.cfg.FareSampleLimit {
		limit = s.cfg.FareSampleLimit
	}
	samples, err := s.repo.FareSamples(start, end, limit)
	if err != nil {
		return nil, err
	}

	return &models.FareAnalysis{
		FareStatistics: models.FareStatistics{
			AvgFarePerKm:       round2(agg.AvgFarePerKm),
			MinFarePerKm:       round2(agg.MinFarePerKm),
			MaxFarePerKm:       round2(agg.MaxFarePerKm),
			FarePerKmStddev:    round2(stats.StdDev(values)),
			AvgFareAmount:      round2(agg.AvgFareAmount),
			AvgDistanceKm:      round2(agg.AvgDistanceKm),
			AvgDurationMinutes: round2(agg.AvgDurationSecs / 60),
		},
		FareByDistance: buckets,
		SampleData:     samples,
	}, nil
}

// GetVendorPerformance returns per-vendor operating profiles plus standout
// vendor insights.
func (s *AnalyticsService) GetVendorPerformance() (*models.VendorPerformanceResponse, error) {
	rows, err := s.repo.VendorPerformance()
	if err != nil {
		return nil, err
	}

	perf := make([]models.VendorPerformance, 0, len(rows))
	for _, r := range rows {
		perf = append(perf, models.VendorPerformance{
			VendorName:         r.VendorName,
			TotalTrips:         r.TotalTrips,
			AvgSpeedKmh:        round2(r.AvgSpeedKmh),
			AvgFarePerKm:       round2(r.AvgFarePerKm),
			AvgDistanceKm:      round2(r.AvgDistanceKm),
			AvgDurationMinutes: round2(r.AvgDurationSecs / 60),
			AvgFareAmount:      round2(r.AvgFareAmount),
			OperationalPeriod: models.Period{
				EarliestTrip: r.FirstTrip,
				LatestTrip:   r.LastTrip,
			},
		})
	}

	insights := models.VendorInsights{TotalVendors: len(perf)}
	if len(perf) > 0 {
		insights.MostActiveVendor = perf[0].VendorName
		fastest, efficient := perf[0], perf[0]
		for _, p := range perf[1:] {
			if p.AvgSpeedKmh > fastest.AvgSpeedKmh {
				fastest = p
			}
			if p.AvgFarePerKm < efficient.AvgFarePerKm {
				efficient = p
			}
		}
		insights.FastestVendor = fastest.VendorName
		insights.MostEfficientVendor = efficient.VendorName
	}

	return &models.VendorPerformanceResponse{
		VendorPerformance: perf,
		Insights:          insights,
	}, nil
}

// hourlyPatterns builds per-hour movement characteristics from peak-hour
// buckets over the full day, ordered by hour.
func (s *AnalyticsService) hourlyPatterns() ([]models.HourlyPattern, error) {
	rows, err := s.repo.HourlyPatterns()
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].AvgSpeedKmh = round2(rows[i].AvgSpeedKmh)
		rows[i].AvgDistanceKm = round2(rows[i].AvgDistanceKm)
		rows[i].AvgFarePerKm = round2(rows[i].AvgFarePerKm)
	}
	return rows, nil
}

// normalizeRange validates an analytics datetime window
func normalizeRange(rf models.RangeFilter) (string, string, error) {
	start, err := normalizeDatetime(rf.Start)
	if err != nil {
		return "", "", models.NewValidationError("start", "malformed date "+rf.Start)
	}
	end, err := normalizeDatetime(rf.End)
	if err != nil {
		return "", "", models.NewValidationError("end", "malformed date "+rf.End)
	}
	return start, end, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
