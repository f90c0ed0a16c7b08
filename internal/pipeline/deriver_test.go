package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
	"github.com/IH-honnette/urban-mobility-summatives/internal/spatial"
)

func parsedRecord(durationSeconds int64) *models.ParsedRecord {
	pickup := time.Date(2016, 3, 14, 17, 24, 55, 0, time.UTC)
	return &models.ParsedRecord{
		ID:               "id001",
		VendorKey:        "1",
		PickupDatetime:   pickup,
		DropoffDatetime:  pickup.Add(time.Duration(durationSeconds) * time.Second),
		PassengerCount:   1,
		PickupLatitude:   40.7580,
		PickupLongitude:  -73.9855,
		DropoffLatitude:  40.7128,
		DropoffLongitude: -74.0060,
		TripDuration:     durationSeconds,
	}
}

func TestDeriveFeatures(t *testing.T) {
	d := NewDeriver(testConfig())

	rec := parsedRecord(600)
	feat, reason := d.Derive(rec)
	require.Empty(t, reason)

	distance := spatial.DistanceKm(
		rec.PickupLatitude, rec.PickupLongitude,
		rec.DropoffLatitude, rec.DropoffLongitude,
	)
	assert.Equal(t, distance, feat.DistanceKm)
	assert.InDelta(t, distance/(600.0/3600), feat.SpeedKmh, 1e-9)

	wantFare := math.Round((2.50+distance*1.50+10*0.30)*100) / 100
	assert.Equal(t, wantFare, feat.FareAmount)
	assert.Equal(t, math.Round(wantFare/distance*100)/100, feat.FarePerKm)
}

func TestDeriveUnrealisticSpeed(t *testing.T) {
	d := NewDeriver(testConfig())

	// ~5.3km in 60s is over 300 km/h
	_, reason := d.Derive(parsedRecord(60))
	assert.Equal(t, models.ReasonUnrealisticSpeed, reason)

	// ~5.3km in six hours is under 1 km/h
	_, reason = d.Derive(parsedRecord(21600))
	assert.Equal(t, models.ReasonUnrealisticSpeed, reason)
}

func TestDeriveZeroDistance(t *testing.T) {
	d := NewDeriver(testConfig())

	// About 5 meters apart: short enough to trip the distance guard, over a
	// duration short enough that the implied speed still looks plausible.
	rec := parsedRecord(10)
	rec.DropoffLatitude = rec.PickupLatitude + 0.000045
	rec.DropoffLongitude = rec.PickupLongitude

	_, reason := d.Derive(rec)
	assert.Equal(t, models.ReasonZeroDistance, reason)
}

func TestDeriveIdenticalEndpoints(t *testing.T) {
	d := NewDeriver(testConfig())

	// Zero distance means zero speed, which already fails the speed band.
	rec := parsedRecord(600)
	rec.DropoffLatitude = rec.PickupLatitude
	rec.DropoffLongitude = rec.PickupLongitude

	_, reason := d.Derive(rec)
	assert.Equal(t, models.ReasonUnrealisticSpeed, reason)
}
