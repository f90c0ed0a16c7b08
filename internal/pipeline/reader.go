package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
)

// ReadRawRecords reads raw trip records from a CSV export in the NYC taxi
// column layout. Columns are resolved by header name, so column order does
// not matter; missing columns leave the field empty and the validator
// rejects the record as missing_field. maxRecords <= 0 reads everything.
func ReadRawRecords(r io.Reader, maxRecords int) ([]models.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}

	field := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	var records []models.RawRecord
	for {
		if maxRecords > 0 && len(records) >= maxRecords {
			break
		}
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		records = append(records, models.RawRecord{
			ID:               field(row, "id"),
			VendorKey:        field(row, "vendor_id"),
			PickupDatetime:   field(row, "pickup_datetime"),
			DropoffDatetime:  field(row, "dropoff_datetime"),
			PassengerCount:   field(row, "passenger_count"),
			PickupLongitude:  field(row, "pickup_longitude"),
			PickupLatitude:   field(row, "pickup_latitude"),
			DropoffLongitude: field(row, "dropoff_longitude"),
			DropoffLatitude:  field(row, "dropoff_latitude"),
			StoreAndFwdFlag:  field(row, "store_and_fwd_flag"),
			TripDuration:     field(row, "trip_duration"),
		})
	}
	return records, nil
}
