package pipeline

import (
	"strconv"
	"strings"
	"time"

	"github.com/IH-honnette/urban-mobility-summatives/internal/config"
	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
	"github.com/IH-honnette/urban-mobility-summatives/internal/spatial"
)

// checkRule is one validation predicate paired with its rejection reason.
// Rules are evaluated in declaration order and the first failure wins, so
// rejection reasons are deterministic and reproducible.
type checkRule struct {
	reason string
	failed func(rec *models.ParsedRecord) bool
}

// Validator applies per-record cleaning rules in a fixed order. The only
// cross-record state is the set of trip identifiers seen in this run, used
// for duplicate detection. Not safe for concurrent use.
type Validator struct {
	bounds spatial.BoundingBox
	cfg    *config.Config
	seen   map[string]struct{}
	rules  []checkRule
}

// NewValidator creates a validator scoped to a single ingestion run
func NewValidator(cfg *config.Config) *Validator {
	v := &Validator{
		bounds: spatial.BoundingBox{
			MinLat: cfg.Bounds.MinLat,
			MaxLat: cfg.Bounds.MaxLat,
			MinLon: cfg.Bounds.MinLon,
			MaxLon: cfg.Bounds.MaxLon,
		},
		cfg:  cfg,
		seen: make(map[string]struct{}),
	}
	v.rules = []checkRule{
		{models.ReasonOutOfBounds, v.outOfBounds},
		{models.ReasonInvalidDuration, v.invalidDuration},
		{models.ReasonInvalidPassengers, v.invalidPassengers},
	}
	return v
}

// Validate runs the fixed-order checks over one raw record. It returns the
// parsed record on acceptance, or the rejection reason otherwise.
func (v *Validator) Validate(raw models.RawRecord) (*models.ParsedRecord, string) {
	if raw.ID != "" {
		if _, dup := v.seen[raw.ID]; dup {
			return nil, models.ReasonDuplicate
		}
		v.seen[raw.ID] = struct{}{}
	}

	parsed, ok := parseRecord(raw)
	if !ok {
		return nil, models.ReasonMissingField
	}

	for _, rule := range v.rules {
		if rule.failed(parsed) {
			return nil, rule.reason
		}
	}
	return parsed, ""
}

func (v *Validator) outOfBounds(rec *models.ParsedRecord) bool {
	return !v.bounds.Contains(rec.PickupLatitude, rec.PickupLongitude) ||
		!v.bounds.Contains(rec.DropoffLatitude, rec.DropoffLongitude)
}

func (v *Validator) invalidDuration(rec *models.ParsedRecord) bool {
	return rec.TripDuration < v.cfg.MinDurationSeconds ||
		rec.TripDuration > v.cfg.MaxDurationSeconds
}

func (v *Validator) invalidPassengers(rec *models.ParsedRecord) bool {
	return rec.PassengerCount < v.cfg.MinPassengers ||
		rec.PassengerCount > v.cfg.MaxPassengers
}

// parseRecord converts raw string fields into native types. Any missing or
// unparseable required field fails the conversion, as does a dropoff that
// does not come after its pickup.
func parseRecord(raw models.RawRecord) (*models.ParsedRecord, bool) {
	if raw.ID == "" || raw.VendorKey == "" {
		return nil, false
	}

	pickup, err := parseDatetime(raw.PickupDatetime)
	if err != nil {
		return nil, false
	}
	dropoff, err := parseDatetime(raw.DropoffDatetime)
	if err != nil {
		return nil, false
	}
	if !dropoff.After(pickup) {
		return nil, false
	}

	passengers, err := strconv.Atoi(strings.TrimSpace(raw.PassengerCount))
	if err != nil {
		return nil, false
	}
	duration, err := strconv.ParseInt(strings.TrimSpace(raw.TripDuration), 10, 64)
	if err != nil {
		return nil, false
	}

	pickupLat, err1 := strconv.ParseFloat(strings.TrimSpace(raw.PickupLatitude), 64)
	pickupLon, err2 := strconv.ParseFloat(strings.TrimSpace(raw.PickupLongitude), 64)
	dropoffLat, err3 := strconv.ParseFloat(strings.TrimSpace(raw.DropoffLatitude), 64)
	dropoffLon, err4 := strconv.ParseFloat(strings.TrimSpace(raw.DropoffLongitude), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return nil, false
	}

	return &models.ParsedRecord{
		ID:               raw.ID,
		VendorKey:        raw.VendorKey,
		PickupDatetime:   pickup,
		DropoffDatetime:  dropoff,
		PassengerCount:   passengers,
		PickupLatitude:   pickupLat,
		PickupLongitude:  pickupLon,
		DropoffLatitude:  dropoffLat,
		DropoffLongitude: dropoffLon,
		StoreAndFwdFlag:  raw.StoreAndFwdFlag,
		TripDuration:     duration,
	}, true
}

func parseDatetime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(models.TimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
