package models

// Overview holds the headline dataset statistics
type Overview struct {
	TotalTrips         int64   `json:"total_trips"`
	AvgSpeedKmh        float64 `json:"avg_speed_kmh"`
	AvgFarePerKm       float64 `json:"avg_fare_per_km"`
	AvgDurationMinutes float64 `json:"avg_duration_minutes"`
	AvgDistanceKm      float64 `json:"avg_distance_km"`
	AvgFare            float64 `json:"avg_fare"`
	DataPeriod         Period  `json:"data_period"`
}

// Period is the pickup-datetime span covered by the dataset
type Period struct {
	EarliestTrip string `json:"earliest_trip,omitempty"`
	LatestTrip   string `json:"latest_trip,omitempty"`
}

// VendorShare is one vendor's slice of the trip volume
type VendorShare struct {
	VendorName  string  `json:"vendor_name"`
	TripCount   int64   `json:"trip_count"`
	MarketShare float64 `json:"market_share"` // percent
}

// PeakHour is one hour-of-day bucket ordered by trip volume
type PeakHour struct {
	Hour        int     `json:"hour"`
	TripCount   int64   `json:"trip_count"`
	AvgSpeedKmh float64 `json:"avg_speed_kmh"`
	AvgFare     float64 `json:"avg_fare"`
}

// StatsResponse bundles the overview endpoint payload
type StatsResponse struct {
	Overview           Overview      `json:"overview"`
	VendorDistribution []VendorShare `json:"vendor_distribution"`
	PeakHours          []PeakHour    `json:"peak_hours"`
}

// HourlyPattern is one hour-of-day bucket with movement characteristics
type HourlyPattern struct {
	Hour          int     `json:"hour"`
	TripCount     int64   `json:"trip_count"`
	AvgSpeedKmh   float64 `json:"avg_speed_kmh"`
	AvgDistanceKm float64 `json:"avg_distance_km"`
	AvgFarePerKm  float64 `json:"avg_fare_per_km"`
}

// WeekdayCount is one day-of-week bucket (0 = Sunday, sqlite convention)
type WeekdayCount struct {
	Weekday   int   `json:"weekday"`
	TripCount int64 `json:"trip_count"`
}

// EfficiencyMetrics classifies trips by speed against configured thresholds
type EfficiencyMetrics struct {
	OverallAvgSpeedKmh  float64 `json:"overall_avg_speed_kmh"`
	OverallAvgFarePerKm float64 `json:"overall_avg_fare_per_km"`
	FastTripsCount      int64   `json:"fast_trips_count"`
	SlowTripsCount      int64   `json:"slow_trips_count"`
	TotalTrips          int64   `json:"total_trips"`
	FastTripsPercentage float64 `json:"fast_trips_percentage"`
	SlowTripsPercentage float64 `json:"slow_trips_percentage"`
}

// ZoneCount is a zone ranked by pickup volume
type ZoneCount struct {
	ZoneName  string  `json:"zone"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	TripCount int64   `json:"count"`
}

// ZoneEfficiency is a zone ranked by a composite speed/fare score
type ZoneEfficiency struct {
	ZoneName        string  `json:"zone_name"`
	TripCount       int64   `json:"trip_count"`
	AvgSpeedKmh     float64 `json:"avg_speed_kmh"`
	AvgFarePerKm    float64 `json:"avg_fare_per_km"`
	AvgDistanceKm   float64 `json:"avg_distance_km"`
	EfficiencyScore float64 `json:"efficiency_score"`
}

// MobilityInsights bundles the mobility-insights endpoint payload
type MobilityInsights struct {
	HourlyPatterns     []HourlyPattern   `json:"hourly_patterns"`
	EfficiencyMetrics  EfficiencyMetrics `json:"efficiency_metrics"`
	MostEfficientZones []ZoneEfficiency  `json:"most_efficient_zones"`
}

// FareStatistics summarizes fare economics over a datetime window
type FareStatistics struct {
	AvgFarePerKm       float64 `json:"avg_fare_per_km"`
	MinFarePerKm       float64 `json:"min_fare_per_km"`
	MaxFarePerKm       float64 `json:"max_fare_per_km"`
	FarePerKmStddev    float64 `json:"fare_per_km_stddev"`
	AvgFareAmount      float64 `json:"avg_fare_amount"`
	AvgDistanceKm      float64 `json:"avg_distance_km"`
	AvgDurationMinutes float64 `json:"avg_duration_minutes"`
}

// FareBucket is fare statistics for one distance category
type FareBucket struct {
	DistanceCategory string  `json:"distance_category"`
	TripCount        int64   `json:"trip_count"`
	AvgFare          float64 `json:"avg_fare"`
	AvgFarePerKm     float64 `json:"avg_fare_per_km"`
	AvgSpeedKmh      float64 `json:"avg_speed_kmh"`
}

// FareSample is one trip's fare datapoint for scatter-style consumption
type FareSample struct {
	FareAmount     float64 `json:"fare_amount"`
	TripDistanceKm float64 `json:"trip_distance_km"`
	TripDuration   int64   `json:"trip_duration"`
	TripSpeedKmh   float64 `json:"trip_speed_kmh"`
	FarePerKm      float64 `json:"fare_per_km"`
}

// FareAnalysis bundles the fare-analysis endpoint payload
type FareAnalysis struct {
	FareStatistics FareStatistics `json:"fare_statistics"`
	FareByDistance []FareBucket   `json:"fare_by_distance"`
	SampleData     []FareSample   `json:"sample_data"`
}

// VendorPerformance is one vendor's aggregate operating profile
type VendorPerformance struct {
	VendorName         string  `json:"vendor_name"`
	TotalTrips         int64   `json:"total_trips"`
	AvgSpeedKmh        float64 `json:"avg_speed_kmh"`
	AvgFarePerKm       float64 `json:"avg_fare_per_km"`
	AvgDistanceKm      float64 `json:"avg_distance_km"`
	AvgDurationMinutes float64 `json:"avg_duration_minutes"`
	AvgFareAmount      float64 `json:"avg_fare_amount"`
	OperationalPeriod  Period  `json:"operational_period"`
}

// VendorInsights summarizes standout vendors
type VendorInsights struct {
	TotalVendors        int    `json:"total_vendors"`
	MostActiveVendor    string `json:"most_active_vendor,omitempty"`
	FastestVendor       string `json:"fastest_vendor,omitempty"`
	MostEfficientVendor string `json:"most_efficient_vendor,omitempty"`
}

// VendorPerformanceResponse bundles the vendor-performance endpoint payload
type VendorPerformanceResponse struct {
	VendorPerformance []VendorPerformance `json:"vendor_performance"`
	Insights          VendorInsights      `json:"insights"`
}
