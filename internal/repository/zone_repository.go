package repository

import (
	"database/sql"

	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
	"github.com/IH-honnette/urban-mobility-summatives/internal/spatial"
)

// ZoneRepository handles database operations for zones
type ZoneRepository struct {
	db *sql.DB
}

// NewZoneRepository creates a new zone repository
func NewZoneRepository(db *sql.DB) *ZoneRepository {
	return &ZoneRepository{db: db}
}

// Upsert assigns a coordinate to its grid cell, creating the zone on first
// sight with centroid = the point and count 1. On every later assignment the
// centroid is re-averaged in place:
//
//	new_centroid = old_centroid + (point - old_centroid) / new_count
//
// All SET expressions evaluate against the pre-update row, so the count used
// in the divisor and the incremented count agree. This upsert is the only
// mutation path for a zone.
func (r *ZoneRepository) Upsert(tx *sql.Tx, key spatial.CellKey, name string, lat, lon float64) (int64, bool, error) {
	var id int64
	var count int64
	err := tx.QueryRow(`
		INSERT INTO zones (zone_name, lat_idx, lon_idx, latitude, longitude, trip_count)
		VALUES (?, ?, ?, ?, ?, 1)
		ON CONFLICT(lat_idx, lon_idx) DO UPDATE SET
			latitude = latitude + (excluded.latitude - latitude) / (trip_count + 1),
			longitude = longitude + (excluded.longitude - longitude) / (trip_count + 1),
			trip_count = trip_count + 1
		RETURNING id, trip_count`,
		name, key.LatIdx, key.LonIdx, lat, lon,
	).Scan(&id, &count)
	if err != nil {
		return 0, false, storeErr("failed to upsert zone", err)
	}
	return id, count == 1, nil
}

// GetZones returns all zones ordered by name
func (r *ZoneRepository) GetZones() ([]models.Zone, error) {
	rows, err := r.db.Query(`
		SELECT id, zone_name, lat_idx, lon_idx, latitude, longitude, trip_count
		FROM zones ORDER BY zone_name`)
	if err != nil {
		return nil, storeErr("failed to query zones", err)
	}
	defer rows.Close()

	var zones []models.Zone
	for rows.Next() {
		var z models.Zone
		if err := rows.Scan(&z.ID, &z.ZoneName, &z.LatIdx, &z.LonIdx, &z.Latitude, &z.Longitude, &z.TripCount); err != nil {
			return nil, storeErr("failed to scan zone", err)
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

// GetZoneByName returns a single zone, or nil when absent
func (r *ZoneRepository) GetZoneByName(name string) (*models.Zone, error) {
	var z models.Zone
	err := r.db.QueryRow(`
		SELECT id, zone_name, lat_idx, lon_idx, latitude, longitude, trip_count
		FROM zones WHERE zone_name = ?`, name,
	).Scan(&z.ID, &z.ZoneName, &z.LatIdx, &z.LonIdx, &z.Latitude, &z.Longitude, &z.TripCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("failed to get zone", err)
	}
	return &z, nil
}
