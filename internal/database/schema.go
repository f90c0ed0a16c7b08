package database

import (
	"database/sql"
	"fmt"
)

// schema is applied idempotently at startup. Vendors and zones carry the
// uniqueness constraints that serialize concurrent creation; trips reference
// both by foreign key.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS vendors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		vendor_key TEXT UNIQUE NOT NULL,
		vendor_name TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS zones (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		zone_name TEXT UNIQUE NOT NULL,
		lat_idx INTEGER NOT NULL,
		lon_idx INTEGER NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		trip_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(lat_idx, lon_idx)
	)`,
	`CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		vendor_id INTEGER NOT NULL REFERENCES vendors(id),
		pickup_datetime TEXT NOT NULL,
		dropoff_datetime TEXT NOT NULL,
		passenger_count INTEGER NOT NULL,
		pickup_longitude REAL NOT NULL,
		pickup_latitude REAL NOT NULL,
		dropoff_longitude REAL NOT NULL,
		dropoff_latitude REAL NOT NULL,
		store_and_fwd_flag TEXT,
		trip_duration INTEGER NOT NULL,
		trip_distance_km REAL NOT NULL,
		trip_speed_kmh REAL NOT NULL,
		fare_amount REAL NOT NULL,
		fare_per_km REAL NOT NULL,
		pickup_zone_id INTEGER NOT NULL REFERENCES zones(id),
		dropoff_zone_id INTEGER NOT NULL REFERENCES zones(id),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS rejections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		trip_id TEXT NOT NULL,
		reason TEXT NOT NULL,
		run_id TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_pickup_datetime ON trips(pickup_datetime)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_fare_amount ON trips(fare_amount)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_distance ON trips(trip_distance_km)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_vendor ON trips(vendor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_pickup_zone ON trips(pickup_zone_id)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_dropoff_zone ON trips(dropoff_zone_id)`,
	`CREATE INDEX IF NOT EXISTS idx_rejections_run ON rejections(run_id)`,
}

// ApplySchema creates all tables and indexes if they do not exist
func ApplySchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
