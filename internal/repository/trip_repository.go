package repository

import (
	"database/sql"
	"strings"

	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
)

// TripRepository handles database operations for trips
type TripRepository struct {
	db *sql.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

// Insert persists a clean trip. The trip's vendor and zone rows must already
// exist within the same transaction. Returns models.ErrDuplicateTrip when the
// identifier is already present in the store.
func (r *TripRepository) Insert(tx *sql.Tx, t models.Trip) error {
	_, err := tx.Exec(`
		INSERT INTO trips (
			id, vendor_id, pickup_datetime, dropoff_datetime, passenger_count,
			pickup_longitude, pickup_latitude, dropoff_longitude, dropoff_latitude,
			store_and_fwd_flag, trip_duration, trip_distance_km, trip_speed_kmh,
			fare_amount, fare_per_km, pickup_zone_id, dropoff_zone_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.VendorID, t.PickupDatetime, t.DropoffDatetime, t.PassengerCount,
		t.PickupLongitude, t.PickupLatitude, t.DropoffLongitude, t.DropoffLatitude,
		t.StoreAndFwdFlag, t.TripDuration, t.TripDistanceKm, t.TripSpeedKmh,
		t.FareAmount, t.FarePerKm, t.PickupZoneID, t.DropoffZoneID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateTrip
		}
		return storeErr("failed to insert trip", err)
	}
	return nil
}

// Exists reports whether a trip identifier is already persisted
func (r *TripRepository) Exists(id string) (bool, error) {
	var one int
	err := r.db.QueryRow("SELECT 1 FROM trips WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, storeErr("failed to check trip existence", err)
	}
	return true, nil
}

const tripColumns = `
	t.id, t.vendor_id, t.pickup_datetime, t.dropoff_datetime, t.passenger_count,
	t.pickup_longitude, t.pickup_latitude, t.dropoff_longitude, t.dropoff_latitude,
	t.store_and_fwd_flag, t.trip_duration, t.trip_distance_km, t.trip_speed_kmh,
	t.fare_amount, t.fare_per_km, t.pickup_zone_id, t.dropoff_zone_id,
	pz.zone_name, dz.zone_name, v.vendor_name`

const tripJoins = `
	FROM trips t
	LEFT JOIN zones pz ON t.pickup_zone_id = pz.id
	LEFT JOIN zones dz ON t.dropoff_zone_id = dz.id
	LEFT JOIN vendors v ON t.vendor_id = v.id`

// buildConditions turns a trip filter into WHERE clauses and bind args
func buildConditions(filter models.TripFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Start != "" {
		conditions = append(conditions, "t.pickup_datetime >= ?")
		args = append(args, filter.Start)
	}
	if filter.End != "" {
		conditions = append(conditions, "t.pickup_datetime <= ?")
		args = append(args, filter.End)
	}
	if filter.MinFare != nil {
		conditions = append(conditions, "t.fare_amount >= ?")
		args = append(args, *filter.MinFare)
	}
	if filter.MinDistanceKm != nil {
		conditions = append(conditions, "t.trip_distance_km >= ?")
		args = append(args, *filter.MinDistanceKm)
	}
	if filter.MaxDistanceKm != nil {
		conditions = append(conditions, "t.trip_distance_km <= ?")
		args = append(args, *filter.MaxDistanceKm)
	}
	if filter.PassengerMin != nil {
		conditions = append(conditions, "t.passenger_count >= ?")
		args = append(args, *filter.PassengerMin)
	}
	if filter.PassengerMax != nil {
		conditions = append(conditions, "t.passenger_count <= ?")
		args = append(args, *filter.PassengerMax)
	}
	if filter.PickupZone != "" {
		conditions = append(conditions, "pz.zone_name = ?")
		args = append(args, filter.PickupZone)
	}

	return conditions, args
}

// FindTrips retrieves one page of trips plus the total count matching the
// filters before pagination. The filter must already be normalized by the
// service layer (validated sort field/direction, page >= 1, bounded page size).
// A stable id tiebreak keeps repeated queries byte-identical.
func (r *TripRepository) FindTrips(filter models.TripFilter) ([]models.Trip, int64, error) {
	conditions, args := buildConditions(filter)

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := "SELECT COUNT(*)" + tripJoins + where
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, storeErr("failed to count trips", err)
	}

	dir := "DESC"
	if filter.SortDir == models.SortAsc {
		dir = "ASC"
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := "SELECT " + tripColumns + tripJoins + where +
		" ORDER BY t." + filter.SortBy + " " + dir + ", t.id ASC LIMIT ? OFFSET ?"
	queryArgs := append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, queryArgs...)
	if err != nil {
		return nil, 0, storeErr("failed to query trips", err)
	}
	defer rows.Close()

	trips := make([]models.Trip, 0, filter.PageSize)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, err
		}
		trips = append(trips, t)
	}
	return trips, total, rows.Err()
}

// CountTrips returns the number of trips matching the filters
func (r *TripRepository) CountTrips(filter models.TripFilter) (int64, error) {
	conditions, args := buildConditions(filter)
	query := "SELECT COUNT(*)" + tripJoins
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	var total int64
	if err := r.db.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, storeErr("failed to count trips", err)
	}
	return total, nil
}

// ScanTrips streams every persisted trip to fn in stable id order. The scan
// is restartable: each call starts a fresh cursor over the current dataset.
func (r *TripRepository) ScanTrips(fn func(models.Trip) error) error {
	rows, err := r.db.Query("SELECT " + tripColumns + tripJoins + " ORDER BY t.id ASC")
	if err != nil {
		return storeErr("failed to scan trips", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return err
		}
		if err := fn(t); err != nil {
			return err
		}
	}
	return rows.Err()
}

func scanTrip(rows *sql.Rows) (models.Trip, error) {
	var t models.Trip
	var pickupZone, dropoffZone, vendorName sql.NullString
	err := rows.Scan(
		&t.ID, &t.VendorID, &t.PickupDatetime, &t.DropoffDatetime, &t.PassengerCount,
		&t.PickupLongitude, &t.PickupLatitude, &t.DropoffLongitude, &t.DropoffLatitude,
		&t.StoreAndFwdFlag, &t.TripDuration, &t.TripDistanceKm, &t.TripSpeedKmh,
		&t.FareAmount, &t.FarePerKm, &t.PickupZoneID, &t.DropoffZoneID,
		&pickupZone, &dropoffZone, &vendorName,
	)
	if err != nil {
		return t, storeErr("failed to scan trip", err)
	}
	t.PickupZone = pickupZone.String
	t.DropoffZone = dropoffZone.String
	t.VendorName = vendorName.String
	return t, nil
}
