package repository

import (
	"database/sql"
	"fmt"

	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
)

// AnalyticsRepository runs read-side aggregate queries over persisted trips.
// Every ordering carries a stable secondary key so repeated calls over an
// unchanged dataset return identical row sequences.
type AnalyticsRepository struct {
	db *sql.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// windowClause builds an optional pickup-datetime range restriction
func windowClause(start, end string) (string, []interface{}) {
	clause := ""
	var args []interface{}
	if start != "" {
		clause += " AND pickup_datetime >= ?"
		args = append(args, start)
	}
	if end != "" {
		clause += " AND pickup_datetime <= ?"
		args = append(args, end)
	}
	return clause, args
}

// OverviewRow is the unrounded overview aggregate
type OverviewRow struct {
	TotalTrips      int64
	AvgSpeedKmh     float64
	AvgFarePerKm    float64
	AvgDurationSecs float64
	AvgDistanceKm   float64
	AvgFare         float64
	EarliestTrip    string
	LatestTrip      string
}

// Overview computes the headline dataset aggregates. An empty dataset yields
// a zero row rather than an error.
func (r *AnalyticsRepository) Overview() (OverviewRow, error) {
	var row OverviewRow
	var speed, farePerKm, duration, distance, fare sql.NullFloat64
	var earliest, latest sql.NullString
	err := r.db.QueryRow(`
		SELECT COUNT(*), AVG(trip_speed_kmh), AVG(fare_per_km), AVG(trip_duration),
			AVG(trip_distance_km), AVG(fare_amount),
			MIN(pickup_datetime), MAX(pickup_datetime)
		FROM trips`,
	).Scan(&row.TotalTrips, &speed, &farePerKm, &duration, &distance, &fare, &earliest, &latest)
	if err != nil {
		return row, storeErr("failed to compute overview", err)
	}
	row.AvgSpeedKmh = speed.Float64
	row.AvgFarePerKm = farePerKm.Float64
	row.AvgDurationSecs = duration.Float64
	row.AvgDistanceKm = distance.Float64
	row.AvgFare = fare.Float64
	row.EarliestTrip = earliest.String
	row.LatestTrip = latest.String
	return row, nil
}

// PeakHours returns hour-of-day buckets ordered by trip volume descending,
// ties broken by hour ascending.
func (r *AnalyticsRepository) PeakHours(limit int) ([]models.PeakHour, error) {
	rows, err := r.db.Query(`
		SELECT CAST(strftime('%H', pickup_datetime) AS INTEGER) AS hour,
			COUNT(*), AVG(trip_speed_kmh), AVG(fare_amount)
		FROM trips
		GROUP BY hour
		ORDER BY COUNT(*) DESC, hour ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, storeErr("failed to query peak hours", err)
	}
	defer rows.Close()

	peaks := []models.PeakHour{}
	for rows.Next() {
		var p models.PeakHour
		if err := rows.Scan(&p.Hour, &p.TripCount, &p.AvgSpeedKmh, &p.AvgFare); err != nil {
			return nil, storeErr("failed to scan peak hour", err)
		}
		peaks = append(peaks, p)
	}
	return peaks, rows.Err()
}

// HourlyDistribution returns trip counts for all 24 hours of day within an
// optional pickup-datetime window. Hours with no trips stay at zero.
func (r *AnalyticsRepository) HourlyDistribution(start, end string) ([24]int64, error) {
	var dist [24]int64
	clause, args := windowClause(start, end)
	rows, err := r.db.Query(`
		SELECT CAST(strftime('%H', pickup_datetime) AS INTEGER) AS hour, COUNT(*)
		FROM trips WHERE 1=1`+clause+`
		GROUP BY hour`, args...)
	if err != nil {
		return dist, storeErr("failed to query hourly distribution", err)
	}
	defer rows.Close()

	for rows.Next() {
		var hour int
		var count int64
		if err := rows.Scan(&hour, &count); err != nil {
			return dist, storeErr("failed to scan hourly distribution", err)
		}
		if hour >= 0 && hour < 24 {
			dist[hour] = count
		}
	}
	return dist, rows.Err()
}

// HourlyPatterns returns per-hour movement characteristics across the full
// day, ordered by hour ascending.
func (r *AnalyticsRepository) HourlyPatterns() ([]models.HourlyPattern, error) {
	rows, err := r.db.Query(`
		SELECT CAST(strftime('%H', pickup_datetime) AS INTEGER) AS hour,
			COUNT(*), AVG(trip_speed_kmh), AVG(trip_distance_km), AVG(fare_per_km)
		FROM trips
		GROUP BY hour
		ORDER BY hour ASC`)
	if err != nil {
		return nil, storeErr("failed to query hourly patterns", err)
	}
	defer rows.Close()

	patterns := []models.HourlyPattern{}
	for rows.Next() {
		var p models.HourlyPattern
		if err := rows.Scan(&p.Hour, &p.TripCount, &p.AvgSpeedKmh, &p.AvgDistanceKm, &p.AvgFarePerKm); err != nil {
			return nil, storeErr("failed to scan hourly pattern", err)
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

// WeeklyPattern returns trip counts grouped by day of week (0 = Sunday)
func (r *AnalyticsRepository) WeeklyPattern() ([]models.WeekdayCount, error) {
	rows, err := r.db.Query(`
		SELECT CAST(strftime('%w', pickup_datetime) AS INTEGER) AS weekday, COUNT(*)
		FROM trips
		GROUP BY weekday
		ORDER BY weekday ASC`)
	if err != nil {
		return nil, storeErr("failed to query weekly pattern", err)
	}
	defer rows.Close()

	pattern := []models.WeekdayCount{}
	for rows.Next() {
		var w models.WeekdayCount
		if err := rows.Scan(&w.Weekday, &w.TripCount); err != nil {
			return nil, storeErr("failed to scan weekly pattern", err)
		}
		pattern = append(pattern, w)
	}
	return pattern, rows.Err()
}

// VendorCount is one vendor's trip volume
type VendorCount struct {
	VendorName string
	TripCount  int64
}

// VendorDistribution returns per-vendor trip counts, busiest first
func (r *AnalyticsRepository) VendorDistribution() ([]VendorCount, error) {
	rows, err := r.db.Query(`
		SELECT v.vendor_name, COUNT(t.id) AS cnt
		FROM vendors v
		LEFT JOIN trips t ON v.id = t.vendor_id
		GROUP BY v.id, v.vendor_name
		ORDER BY cnt DESC, v.vendor_name ASC`)
	if err != nil {
		return nil, storeErr("failed to query vendor distribution", err)
	}
	defer rows.Close()

	var counts []VendorCount
	for rows.Next() {
		var vc VendorCount
		if err := rows.Scan(&vc.VendorName, &vc.TripCount); err != nil {
			return nil, storeErr("failed to scan vendor count", err)
		}
		counts = append(counts, vc)
	}
	return counts, rows.Err()
}

// VendorPerformanceRow is one vendor's unrounded aggregate profile
type VendorPerformanceRow struct {
	VendorName      string
	TotalTrips      int64
	AvgSpeedKmh     float64
	AvgFarePerKm    float64
	AvgDistanceKm   float64
	AvgDurationSecs float64
	AvgFareAmount   float64
	FirstTrip       string
	LastTrip        string
}

// VendorPerformance returns per-vendor operating aggregates, busiest first
func (r *AnalyticsRepository) VendorPerformance() ([]VendorPerformanceRow, error) {
	rows, err := r.db.Query(`
		SELECT v.vendor_name, COUNT(t.id) AS cnt,
			AVG(t.trip_speed_kmh), AVG(t.fare_per_km), AVG(t.trip_distance_km),
			AVG(t.trip_duration), AVG(t.fare_amount),
			MIN(t.pickup_datetime), MAX(t.pickup_datetime)
		FROM vendors v
		LEFT JOIN trips t ON v.id = t.vendor_id
		GROUP BY v.id, v.vendor_name
		ORDER BY cnt DESC, v.vendor_name ASC`)
	if err != nil {
		return nil, storeErr("failed to query vendor performance", err)
	}
	defer rows.Close()

	var perf []VendorPerformanceRow
	for rows.Next() {
		var p VendorPerformanceRow
		var speed, farePerKm, distance, duration, fare sql.NullFloat64
		var first, last sql.NullString
		if err := rows.Scan(&p.VendorName, &p.TotalTrips, &speed, &farePerKm,
			&distance, &duration, &fare, &first, &last); err != nil {
			return nil, storeErr("failed to scan vendor performance", err)
		}
		p.AvgSpeedKmh = speed.Float64
		p.AvgFarePerKm = farePerKm.Float64
		p.AvgDistanceKm = distance.Float64
		p.AvgDurationSecs = duration.Float64
		p.AvgFareAmount = fare.Float64
		p.FirstTrip = first.String
		p.LastTrip = last.String
		perf = append(perf, p)
	}
	return perf, rows.Err()
}

// EfficiencyRow holds speed-classification counts
type EfficiencyRow struct {
	AvgSpeedKmh  float64
	AvgFarePerKm float64
	FastTrips    int64
	SlowTrips    int64
	TotalTrips   int64
}

// EfficiencyCounts classifies trips as fast or slow against the given
// speed thresholds.
func (r *AnalyticsRepository) EfficiencyCounts(fastKmh, slowKmh float64) (EfficiencyRow, error) {
	var row EfficiencyRow
	var speed, farePerKm sql.NullFloat64
	err := r.db.QueryRow(`
		SELECT AVG(trip_speed_kmh), AVG(fare_per_km),
			COUNT(CASE WHEN trip_speed_kmh > ? THEN 1 END),
			COUNT(CASE WHEN trip_speed_kmh < ? THEN 1 END),
			COUNT(*)
		FROM trips`, fastKmh, slowKmh,
	).Scan(&speed, &farePerKm, &row.FastTrips, &row.SlowTrips, &row.TotalTrips)
	if err != nil {
		return row, storeErr("failed to compute efficiency counts", err)
	}
	row.AvgSpeedKmh = speed.Float64
	row.AvgFarePerKm = farePerKm.Float64
	return row, nil
}

// BusiestZones returns pickup zones ordered by trip volume descending,
// ties broken by zone name.
func (r *AnalyticsRepository) BusiestZones(limit int) ([]models.ZoneCount, error) {
	rows, err := r.db.Query(`
		SELECT pz.zone_name, pz.latitude, pz.longitude, COUNT(t.id) AS cnt
		FROM trips t
		JOIN zones pz ON t.pickup_zone_id = pz.id
		GROUP BY pz.id, pz.zone_name, pz.latitude, pz.longitude
		ORDER BY cnt DESC, pz.zone_name ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, storeErr("failed to query busiest zones", err)
	}
	defer rows.Close()

	zones := []models.ZoneCount{}
	for rows.Next() {
		var z models.ZoneCount
		if err := rows.Scan(&z.ZoneName, &z.Latitude, &z.Longitude, &z.TripCount); err != nil {
			return nil, storeErr("failed to scan zone count", err)
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

// ZonesWithCounts returns every zone with its pickup trip count, for map
// rendering. Zones with no pickups appear with a zero count.
func (r *AnalyticsRepository) ZonesWithCounts() ([]models.ZoneCount, error) {
	rows, err := r.db.Query(`
		SELECT pz.zone_name, pz.latitude, pz.longitude, COUNT(t.id) AS cnt
		FROM zones pz
		LEFT JOIN trips t ON pz.id = t.pickup_zone_id
		GROUP BY pz.id, pz.zone_name, pz.latitude, pz.longitude
		ORDER BY cnt DESC, pz.zone_name ASC`)
	if err != nil {
		return nil, storeErr("failed to query zones with counts", err)
	}
	defer rows.Close()

	zones := []models.ZoneCount{}
	for rows.Next() {
		var z models.ZoneCount
		if err := rows.Scan(&z.ZoneName, &z.Latitude, &z.Longitude, &z.TripCount); err != nil {
			return nil, storeErr("failed to scan zone count", err)
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

// EfficientZones ranks pickup zones by a composite score of mean speed
// adjusted by mean fare-per-km. Zones below the trip floor are excluded so
// one lucky trip cannot top the ranking.
func (r *AnalyticsRepository) EfficientZones(minTrips, limit int) ([]models.ZoneEfficiency, error) {
	rows, err := r.db.Query(`
		SELECT pz.zone_name, COUNT(*) AS cnt, AVG(t.trip_speed_kmh),
			AVG(t.fare_per_km), AVG(t.trip_distance_km),
			AVG(t.trip_speed_kmh) / AVG(t.fare_per_km) AS score
		FROM trips t
		JOIN zones pz ON t.pickup_zone_id = pz.id
		GROUP BY pz.id, pz.zone_name
		HAVING COUNT(*) >= ?
		ORDER BY score DESC, pz.zone_name ASC
		LIMIT ?`, minTrips, limit)
	if err != nil {
		return nil, storeErr("failed to query efficient zones", err)
	}
	defer rows.Close()

	zones := []models.ZoneEfficiency{}
	for rows.Next() {
		var z models.ZoneEfficiency
		if err := rows.Scan(&z.ZoneName, &z.TripCount, &z.AvgSpeedKmh,
			&z.AvgFarePerKm, &z.AvgDistanceKm, &z.EfficiencyScore); err != nil {
			return nil, storeErr("failed to scan zone efficiency", err)
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

// FarePerKmValues returns every fare-per-km value within the window, in
// stable id order, for spread statistics computed in the service layer.
func (r *AnalyticsRepository) FarePerKmValues(start, end string) ([]float64, error) {
	clause, args := windowClause(start, end)
	rows, err := r.db.Query(
		"SELECT fare_per_km FROM trips WHERE 1=1"+clause+" ORDER BY id ASC", args...)
	if err != nil {
		return nil, storeErr("failed to query fare values", err)
	}
	defer rows.Close()

	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, storeErr("failed to scan fare value", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// FareAggregateRow holds unrounded fare economics for a datetime window
type FareAggregateRow struct {
	AvgFarePerKm    float64
	MinFarePerKm    float64
	MaxFarePerKm    float64
	AvgFareAmount   float64
	AvgDistanceKm   float64
	AvgDurationSecs float64
}

// FareAggregates computes fare economics over an optional datetime window
func (r *AnalyticsRepository) FareAggregates(start, end string) (FareAggregateRow, error) {
	var row FareAggregateRow
	clause, args := windowClause(start, end)
	var avgFpk, minFpk, maxFpk, avgFare, avgDist, avgDur sql.NullFloat64
	err := r.db.QueryRow(`
		SELECT AVG(fare_per_km), MIN(fare_per_km), MAX(fare_per_km),
			AVG(fare_amount), AVG(trip_distance_km), AVG(trip_duration)
		FROM trips WHERE 1=1`+clause, args...,
	).Scan(&avgFpk, &minFpk, &maxFpk, &avgFare, &avgDist, &avgDur)
	if err != nil {
		return row, storeErr("failed to compute fare aggregates", err)
	}
	row.AvgFarePerKm = avgFpk.Float64
	row.MinFarePerKm = minFpk.Float64
	row.MaxFarePerKm = maxFpk.Float64
	row.AvgFareAmount = avgFare.Float64
	row.AvgDistanceKm = avgDist.Float64
	row.AvgDurationSecs = avgDur.Float64
	return row, nil
}

// FareByDistance buckets fare statistics by distance category. Breakpoints
// come from configuration; buckets are ordered short to very long.
func (r *AnalyticsRepository) FareByDistance(shortKm, mediumKm, longKm float64, start, end string) ([]models.FareBucket, error) {
	clause, args := windowClause(start, end)
	query := `
		SELECT CASE
				WHEN trip_distance_km < ? THEN 0
				WHEN trip_distance_km < ? THEN 1
				WHEN trip_distance_km < ? THEN 2
				ELSE 3
			END AS bucket,
			COUNT(*), AVG(fare_amount), AVG(fare_per_km), AVG(trip_speed_kmh)
		FROM trips WHERE 1=1` + clause + `
		GROUP BY bucket
		ORDER BY bucket ASC`
	queryArgs := append([]interface{}{shortKm, mediumKm, longKm}, args...)

	rows, err := r.db.Query(query, queryArgs...)
	if err != nil {
		return nil, storeErr("failed to query fare buckets", err)
	}
	defer rows.Close()

	labels := bucketLabels(shortKm, mediumKm, longKm)
	buckets := []models.FareBucket{}
	for rows.Next() {
		var idx int
		var b models.FareBucket
		if err := rows.Scan(&idx, &b.TripCount, &b.AvgFare, &b.AvgFarePerKm, &b.AvgSpeedKmh); err != nil {
			return nil, storeErr("failed to scan fare bucket", err)
		}
		if idx >= 0 && idx < len(labels) {
			b.DistanceCategory = labels[idx]
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func bucketLabels(shortKm, mediumKm, longKm float64) [4]string {
	return [4]string{
		fmt.Sprintf("Short (<%gkm)", shortKm),
		fmt.Sprintf("Medium (%g-%gkm)", shortKm, mediumKm),
		fmt.Sprintf("Long (%g-%gkm)", mediumKm, longKm),
		fmt.Sprintf("Very Long (>%gkm)", longKm),
	}
}

// FareSamples returns up to limit fare datapoints for scatter consumption,
// newest pickups first with a stable id tiebreak.
func (r *AnalyticsRepository) FareSamples(start, end string, limit int) ([]models.FareSample, error) {
	clause, args := windowClause(start, end)
	query := `
		SELECT fare_amount, trip_distance_km, trip_duration, trip_speed_kmh, fare_per_km
		FROM trips WHERE 1=1` + clause + `
		ORDER BY pickup_datetime DESC, id ASC
		LIMIT ?`
	queryArgs := append(args, limit)

	rows, err := r.db.Query(query, queryArgs...)
	if err != nil {
		return nil, storeErr("failed to query fare samples", err)
	}
	defer rows.Close()

	samples := []models.FareSample{}
	for rows.Next() {
		var s models.FareSample
		if err := rows.Scan(&s.FareAmount, &s.TripDistanceKm, &s.TripDuration, &s.TripSpeedKmh, &s.FarePerKm); err != nil {
			return nil, storeErr("failed to scan fare sample", err)
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
