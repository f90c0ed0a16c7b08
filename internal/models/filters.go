package models

// Sortable trip fields. Anything outside this set is a validation error.
const (
	SortPickupDatetime = "pickup_datetime"
	SortFareAmount     = "fare_amount"
	SortTripDistanceKm = "trip_distance_km"
	SortTripSpeedKmh   = "trip_speed_kmh"
	SortTripDuration   = "trip_duration"
)

// Sort directions
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortableTripFields is the allow-list of fields trips may be sorted by
var SortableTripFields = map[string]bool{
	SortPickupDatetime: true,
	SortFareAmount:     true,
	SortTripDistanceKm: true,
	SortTripSpeedKmh:   true,
	SortTripDuration:   true,
}

// TripFilter represents filter, sort and pagination parameters for trip queries.
// All filters are optional and AND-combined. Datetimes are ISO-8601 strings.
type TripFilter struct {
	Start         string   `form:"start"` // pickup_datetime >=
	End           string   `form:"end"`   // pickup_datetime <=
	MinFare       *float64 `form:"min_fare"`
	MinDistanceKm *float64 `form:"min_distance_km"`
	MaxDistanceKm *float64 `form:"max_distance_km"`
	PassengerMin  *int     `form:"passenger_min"`
	PassengerMax  *int     `form:"passenger_max"`
	PickupZone    string   `form:"pickup_zone"`

	SortBy  string `form:"sort_by"`  // defaults to pickup_datetime
	SortDir string `form:"sort_dir"` // asc|desc, defaults to desc

	Page     int `form:"page"`      // 1-indexed
	PageSize int `form:"page_size"` // clamped to the configured maximum
}

// RangeFilter restricts analytics queries to a pickup-datetime window
type RangeFilter struct {
	Start string `form:"start"`
	End   string `form:"end"`
	Limit int    `form:"limit"` // sample size cap where applicable
}
