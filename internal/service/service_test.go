package service

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IH-honnette/urban-mobility-summatives/internal/config"
	"github.com/IH-honnette/urban-mobility-summatives/internal/database"
	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
	"github.com/IH-honnette/urban-mobility-summatives/internal/pipeline"
)

func testConfig() *config.Config {
	return &config.Config{
		Bounds: config.BoundsConfig{
			MinLat: 40.4774, MaxLat: 40.9176,
			MinLon: -74.2591, MaxLon: -73.7004,
		},
		MinDurationSeconds: 60,
		MaxDurationSeconds: 21600,
		MinPassengers:      1,
		MaxPassengers:      6,
		MinSpeedKmh:        1,
		MaxSpeedKmh:        200,
		MinDistanceKm:      0.01,
		BaseFare:           2.50,
		PerKmRate:          1.50,
		PerMinuteRate:      0.30,
		ZoneCellSizeDeg:    0.01,
		FastSpeedKmh:       30,
		SlowSpeedKmh:       10,
		MinZoneTrips:       2,
		ShortDistanceKm:    2,
		MediumDistanceKm:   5,
		LongDistanceKm:     10,
		FareSampleLimit:    1000,
		DefaultPageSize:    50,
		MaxPageSize:        500,
		IngestWorkers:      2,
	}
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// ingestFixture runs a real ingestion of n clean records through the
// pipeline. Trip i picks up at hour i%24 with vendor 1 for even i and
// vendor 2 for odd i, and its coordinates shift north as i grows.
func ingestFixture(t *testing.T, db *sql.DB, cfg *config.Config, n int) {
	t.Helper()
	records := make([]models.RawRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, models.RawRecord{
			ID:               fmt.Sprintf("id%03d", i),
			VendorKey:        fmt.Sprintf("%d", i%2+1),
			PickupDatetime:   fmt.Sprintf("2016-03-%02d %02d:15:00", i/24+1, i%24),
			DropoffDatetime:  fmt.Sprintf("2016-03-%02d %02d:25:00", i/24+1, i%24),
			PassengerCount:   fmt.Sprintf("%d", i%6+1),
			PickupLatitude:   fmt.Sprintf("%.4f", 40.70+float64(i)*0.0005),
			PickupLongitude:  "-74.0050",
			DropoffLatitude:  fmt.Sprintf("%.4f", 40.72+float64(i)*0.0005),
			DropoffLongitude: "-74.0050",
			StoreAndFwdFlag:  "N",
			TripDuration:     "600",
		})
	}

	o := pipeline.NewOrchestrator(db, cfg, nil)
	summary, err := o.Run(context.Background(), records)
	require.NoError(t, err)
	require.Equal(t, n, summary.Accepted)
}
