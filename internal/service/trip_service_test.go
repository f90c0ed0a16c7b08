package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
	"github.com/IH-honnette/urban-mobility-summatives/internal/repository"
)

func newTripService(t *testing.T) *TripService {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig()
	ingestFixture(t, db, cfg, 12)
	return NewTripService(repository.NewTripRepository(db), cfg)
}

func TestGetTripsDefaults(t *testing.T) {
	svc := newTripService(t)

	page, err := svc.GetTrips(models.TripFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 50, page.PageSize)
	require.Len(t, page.Data, 12)

	// Default ordering is pickup_datetime descending.
	assert.Equal(t, "id011", page.Data[0].ID)
	assert.Equal(t, "id000", page.Data[11].ID)
}

func TestGetTripsSortAscending(t *testing.T) {
	svc := newTripService(t)

	page, err := svc.GetTrips(models.TripFilter{
		SortBy:  models.SortFareAmount,
		SortDir: "ASC", // direction is case-insensitive
	})
	require.NoError(t, err)
	require.NotEmpty(t, page.Data)
	for i := 1; i < len(page.Data); i++ {
		assert.LessOrEqual(t, page.Data[i-1].FareAmount, page.Data[i].FareAmount)
	}
}

func TestGetTripsValidation(t *testing.T) {
	svc := newTripService(t)

	tests := []struct {
		name   string
		filter models.TripFilter
		field  string
	}{
		{"unknown sort field", models.TripFilter{SortBy: "fare_amount; DROP TABLE trips"}, "sort_by"},
		{"bad sort direction", models.TripFilter{SortDir: "sideways"}, "sort_dir"},
		{"malformed start date", models.TripFilter{Start: "not-a-date"}, "start"},
		{"malformed end date", models.TripFilter{End: "2016-13-45"}, "end"},
		{"negative page", models.TripFilter{Page: -1}, "page"},
		{"negative page size", models.TripFilter{PageSize: -5}, "page_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetTrips(tt.filter)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestGetTripsPageSizeClamped(t *testing.T) {
	svc := newTripService(t)

	page, err := svc.GetTrips(models.TripFilter{PageSize: 100000})
	require.NoError(t, err)
	assert.Equal(t, 500, page.PageSize)
}

func TestGetTripsPastLastPage(t *testing.T) {
	svc := newTripService(t)

	page, err := svc.GetTrips(models.TripFilter{Page: 40})
	require.NoError(t, err)
	assert.Equal(t, int64(12), page.Total)
	assert.Empty(t, page.Data)
}

func TestGetTripsDateWindow(t *testing.T) {
	svc := newTripService(t)

	// RFC3339 input is rewritten into the storage layout before comparison.
	page, err := svc.GetTrips(models.TripFilter{
		Start: "2016-03-01T03:00:00Z",
		End:   "2016-03-01T06:59:59Z",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total) // hours 3,4,5,6
}

func TestCountTrips(t *testing.T) {
	svc := newTripService(t)

	minFare := 0.0
	count, err := svc.CountTrips(models.TripFilter{MinFare: &minFare})
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
}
