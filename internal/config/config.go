package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	DBPath string

	// NYC bounding box for coordinate validation
	Bounds BoundsConfig

	// Ingestion thresholds
	MinDurationSeconds int64
	MaxDurationSeconds int64
	MinPassengers      int
	MaxPassengers      int
	MinSpeedKmh        float64
	MaxSpeedKmh        float64
	MinDistanceKm      float64

	// Fare model constants
	BaseFare      float64
	PerKmRate     float64
	PerMinuteRate float64

	// Zone grid
	ZoneCellSizeDeg float64
	ZoneNamer       string // "grid" or "geohash"

	// Analytics thresholds
	FastSpeedKmh     float64
	SlowSpeedKmh     float64
	MinZoneTrips     int
	ShortDistanceKm  float64
	MediumDistanceKm float64
	LongDistanceKm   float64
	FareSampleLimit  int

	// Query limits
	DefaultPageSize int
	MaxPageSize     int

	// Ingestion
	IngestWorkers int
	IngestFile    string
	MaxRecords    int
}

// BoundsConfig is the rectangular coordinate bounding box for valid trips
type BoundsConfig struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Load reads configuration from the environment, falling back to defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:   getenv("PORT", ":8080"),
		DBPath: getenv("DB_PATH", "./data/mobility.db"),

		Bounds: BoundsConfig{
			MinLat: getenvFloat("BOUNDS_MIN_LAT", 40.4774),
			MaxLat: getenvFloat("BOUNDS_MAX_LAT", 40.9176),
			MinLon: getenvFloat("BOUNDS_MIN_LON", -74.2591),
			MaxLon: getenvFloat("BOUNDS_MAX_LON", -73.7004),
		},

		MinDurationSeconds: getenvInt64("MIN_DURATION_SECONDS", 60),
		MaxDurationSeconds: getenvInt64("MAX_DURATION_SECONDS", 21600),
		MinPassengers:      getenvInt("MIN_PASSENGERS", 1),
		MaxPassengers:      getenvInt("MAX_PASSENGERS", 6),
		MinSpeedKmh:        getenvFloat("MIN_SPEED_KMH", 1),
		MaxSpeedKmh:        getenvFloat("MAX_SPEED_KMH", 200),
		MinDistanceKm:      getenvFloat("MIN_DISTANCE_KM", 0.01),

		BaseFare:      getenvFloat("BASE_FARE", 2.50),
		PerKmRate:     getenvFloat("PER_KM_RATE", 1.50),
		PerMinuteRate: getenvFloat("PER_MINUTE_RATE", 0.30),

		ZoneCellSizeDeg: getenvFloat("ZONE_CELL_SIZE_DEG", 0.01),
		ZoneNamer:       getenv("ZONE_NAMER", "grid"),

		FastSpeedKmh:     getenvFloat("FAST_SPEED_KMH", 30),
		SlowSpeedKmh:     getenvFloat("SLOW_SPEED_KMH", 10),
		MinZoneTrips:     getenvInt("MIN_ZONE_TRIPS", 5),
		ShortDistanceKm:  getenvFloat("SHORT_DISTANCE_KM", 2),
		MediumDistanceKm: getenvFloat("MEDIUM_DISTANCE_KM", 5),
		LongDistanceKm:   getenvFloat("LONG_DISTANCE_KM", 10),
		FareSampleLimit:  getenvInt("FARE_SAMPLE_LIMIT", 1000),

		DefaultPageSize: getenvInt("DEFAULT_PAGE_SIZE", 50),
		MaxPageSize:     getenvInt("MAX_PAGE_SIZE", 500),

		IngestWorkers: getenvInt("INGEST_WORKERS", 4),
		IngestFile:    getenv("INGEST_FILE", "./train.csv"),
		MaxRecords:    getenvInt("MAX_RECORDS", 0),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
