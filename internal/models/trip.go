package models

import "time"

// TimeLayout is the canonical datetime layout used in storage and responses.
// Raw NYC taxi exports use the same layout.
const TimeLayout = "2006-01-02 15:04:05"

// RawRecord is one unprocessed input row as read from a trip export.
// It is consumed exactly once by the ingestion pipeline.
type RawRecord struct {
	ID               string
	VendorKey        string
	PickupDatetime   string
	DropoffDatetime  string
	PassengerCount   string
	PickupLongitude  string
	PickupLatitude   string
	DropoffLongitude string
	DropoffLatitude  string
	StoreAndFwdFlag  string
	TripDuration     string
}

// ParsedRecord is a RawRecord with its fields parsed into native types.
// Produced by the validator's missing_field check; fields are only
// meaningful once that check has passed.
type ParsedRecord struct {
	ID               string
	VendorKey        string
	PickupDatetime   time.Time
	DropoffDatetime  time.Time
	PassengerCount   int
	PickupLatitude   float64
	PickupLongitude  float64
	DropoffLatitude  float64
	DropoffLongitude float64
	StoreAndFwdFlag  string
	TripDuration     int64 // seconds
}

// Trip is a validated, feature-enriched trip record. Immutable after ingestion.
type Trip struct {
	ID              string `json:"id" db:"id"`
	VendorID        int64  `json:"-" db:"vendor_id"`
	VendorName      string `json:"vendor_name,omitempty"`
	PickupDatetime  string `json:"pickup_datetime" db:"pickup_datetime"`
	DropoffDatetime string `json:"dropoff_datetime" db:"dropoff_datetime"`
	PassengerCount  int    `json:"passenger_count" db:"passenger_count"`

	PickupLatitude   float64 `json:"pickup_latitude" db:"pickup_latitude"`
	PickupLongitude  float64 `json:"pickup_longitude" db:"pickup_longitude"`
	DropoffLatitude  float64 `json:"dropoff_latitude" db:"dropoff_latitude"`
	DropoffLongitude float64 `json:"dropoff_longitude" db:"dropoff_longitude"`
	StoreAndFwdFlag  string  `json:"store_and_fwd_flag,omitempty" db:"store_and_fwd_flag"`

	// Derived features
	TripDuration   int64   `json:"trip_duration" db:"trip_duration"` // seconds
	TripDistanceKm float64 `json:"trip_distance_km" db:"trip_distance_km"`
	TripSpeedKmh   float64 `json:"trip_speed_kmh" db:"trip_speed_kmh"`
	FareAmount     float64 `json:"fare_amount" db:"fare_amount"`
	FarePerKm      float64 `json:"fare_per_km" db:"fare_per_km"`

	// Zone references
	PickupZoneID  int64  `json:"-" db:"pickup_zone_id"`
	DropoffZoneID int64  `json:"-" db:"dropoff_zone_id"`
	PickupZone    string `json:"pickup_zone,omitempty"`
	DropoffZone   string `json:"dropoff_zone,omitempty"`
}

// Vendor is a trip provider, deduplicated by its natural key.
type Vendor struct {
	ID         int64  `json:"id" db:"id"`
	VendorKey  string `json:"vendor_key" db:"vendor_key"`
	VendorName string `json:"vendor_name" db:"vendor_name"`
}

// Zone is a discretized geographic grid cell. Its centroid is the running
// mean of every coordinate ever assigned to it.
type Zone struct {
	ID        int64   `json:"id" db:"id"`
	ZoneName  string  `json:"zone_name" db:"zone_name"`
	LatIdx    int     `json:"-" db:"lat_idx"`
	LonIdx    int     `json:"-" db:"lon_idx"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
	TripCount int64   `json:"trip_count" db:"trip_count"`
}

// Rejection is one excluded raw record plus the reason it was excluded.
// Append-only; kept for transparency reporting.
type Rejection struct {
	ID        int64  `json:"id" db:"id"`
	TripID    string `json:"trip_id" db:"trip_id"`
	Reason    string `json:"reason" db:"reason"`
	RunID     string `json:"run_id" db:"run_id"`
	CreatedAt string `json:"created_at" db:"created_at"`
}

// TripsPage is a page envelope for trip queries
type TripsPage struct {
	Data     []Trip `json:"data"`
	Total    int64  `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// IngestSummary reports the outcome of one ingestion run
type IngestSummary struct {
	RunID            string         `json:"run_id"`
	TotalRecords     int            `json:"total_records"`
	Accepted         int            `json:"accepted"`
	Rejected         int            `json:"rejected"`
	RejectedByReason map[string]int `json:"rejected_by_reason"`
	VendorsCreated   int64          `json:"vendors_created"`
	ZonesCreated     int64          `json:"zones_created"`
	DurationSeconds  float64        `json:"duration_seconds"`
	Rejections       []Rejection    `json:"rejections,omitempty"`
}
