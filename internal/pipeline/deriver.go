package pipeline

import (
	"math"

	"github.com/IH-honnette/urban-mobility-summatives/internal/config"
	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
	"github.com/IH-honnette/urban-mobility-summatives/internal/spatial"
)

// DerivedFeatures is the immutable bundle of per-trip computed metrics
type DerivedFeatures struct {
	DistanceKm float64
	SpeedKmh   float64
	FareAmount float64
	FarePerKm  float64
}

// Deriver computes derived metrics for validated records. Pure and safe for
// concurrent use.
type Deriver struct {
	minSpeedKmh   float64
	maxSpeedKmh   float64
	minDistanceKm float64
	baseFare      float64
	perKmRate     float64
	perMinuteRate float64
}

// NewDeriver creates a deriver with the configured fare model and thresholds
func NewDeriver(cfg *config.Config) *Deriver {
	return &Deriver{
		minSpeedKmh:   cfg.MinSpeedKmh,
		maxSpeedKmh:   cfg.MaxSpeedKmh,
		minDistanceKm: cfg.MinDistanceKm,
		baseFare:      cfg.BaseFare,
		perKmRate:     cfg.PerKmRate,
		perMinuteRate: cfg.PerMinuteRate,
	}
}

// Derive computes distance, speed, fare and fare-per-km for an accepted
// record. Speed outside the realistic band and near-zero distances are
// rejected here, after computation, so these reasons stay distinct from the
// validator's structural ones.
func (d *Deriver) Derive(rec *models.ParsedRecord) (DerivedFeatures, string) {
	distance := spatial.DistanceKm(
		rec.PickupLatitude, rec.PickupLongitude,
		rec.DropoffLatitude, rec.DropoffLongitude,
	)

	speed := distance / (float64(rec.TripDuration) / 3600)
	if speed < d.minSpeedKmh || speed > d.maxSpeedKmh {
		return DerivedFeatures{}, models.ReasonUnrealisticSpeed
	}

	// Guard the fare_per_km division: a near-zero distance would produce an
	// absurd ratio.
	if distance < d.minDistanceKm {
		return DerivedFeatures{}, models.ReasonZeroDistance
	}

	fare := d.baseFare +
		distance*d.perKmRate +
		float64(rec.TripDuration)/60*d.perMinuteRate
	fare = round2(fare)

	return DerivedFeatures{
		DistanceKm: distance,
		SpeedKmh:   speed,
		FareAmount: fare,
		FarePerKm:  round2(fare / distance),
	}, ""
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
