package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/IH-honnette/urban-mobility-summatives/internal/config"
	"github.com/IH-honnette/urban-mobility-summatives/internal/database"
	"github.com/IH-honnette/urban-mobility-summatives/internal/metrics"
	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
	"github.com/IH-honnette/urban-mobility-summatives/internal/repository"
)

// Orchestrator drives one ingestion pass: validate, derive, assign zones,
// persist. A bad record is logged and skipped; only a persistence-boundary
// failure aborts the run.
type Orchestrator struct {
	db         *sql.DB
	cfg        *config.Config
	deriver    *Deriver
	assigner   *ZoneAssigner
	vendors    *repository.VendorRepository
	trips      *repository.TripRepository
	rejections *repository.RejectionRepository
	workers    int
	collector  *metrics.Collector
}

// NewOrchestrator wires the pipeline stages over one database. The metrics
// collector may be nil.
func NewOrchestrator(db *sql.DB, cfg *config.Config, collector *metrics.Collector) *Orchestrator {
	workers := cfg.IngestWorkers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Orchestrator{
		db:         db,
		cfg:        cfg,
		deriver:    NewDeriver(cfg),
		assigner:   NewZoneAssigner(cfg, repository.NewZoneRepository(db)),
		vendors:    repository.NewVendorRepository(db),
		trips:      repository.NewTripRepository(db),
		rejections: repository.NewRejectionRepository(db),
		workers:    workers,
		collector:  collector,
	}
}

// outcome is the result of the validate+derive stages for one input record
type outcome struct {
	parsed   *models.ParsedRecord
	features DerivedFeatures
	reason   string
	tripID   string
}

// Run ingests a bounded batch of raw records and returns the run summary.
// Validation is sequential (the duplicate set is ordered by input);
// derivation is pure and fans out across workers; persistence is sequential
// so each trip's vendor, zones and row commit as one atomic unit, in input
// order.
func (o *Orchestrator) Run(ctx context.Context, records []models.RawRecord) (*models.IngestSummary, error) {
	started := time.Now()
	runID := uuid.NewString()

	summary := &models.IngestSummary{
		RunID:            runID,
		TotalRecords:     len(records),
		RejectedByReason: make(map[string]int),
	}

	outcomes := make([]outcome, len(records))

	validator := NewValidator(o.cfg)
	for i, raw := range records {
		parsed, reason := validator.Validate(raw)
		outcomes[i] = outcome{parsed: parsed, reason: reason, tripID: raw.ID}
	}

	if err := o.deriveAll(ctx, outcomes); err != nil {
		return nil, err
	}

	for i := range outcomes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := &outcomes[i]

		if out.reason == "" {
			err := o.persistTrip(out.parsed, out.features, summary)
			if errors.Is(err, models.ErrDuplicateTrip) {
				// Already in the store from an earlier run: reject, don't upsert.
				out.reason = models.ReasonDuplicate
			} else if err != nil {
				return nil, err
			}
		}

		if out.reason != "" {
			if err := o.rejections.Append(out.tripID, out.reason, runID); err != nil {
				return nil, err
			}
			summary.Rejected++
			summary.RejectedByReason[out.reason]++
			if o.collector != nil {
				o.collector.TripsRejected.WithLabelValues(out.reason).Inc()
			}
		}
	}

	summary.DurationSeconds = time.Since(started).Seconds()

	rejections, err := o.rejections.GetByRun(runID)
	if err != nil {
		return nil, err
	}
	summary.Rejections = rejections

	if o.collector != nil {
		o.collector.RecordsIngested.Add(float64(len(records)))
		o.collector.IngestDuration.Observe(summary.DurationSeconds)
	}

	log.Printf("Ingestion run %s: %d records, %d accepted, %d rejected, %d vendors created, %d zones created (%.2fs)",
		runID, summary.TotalRecords, summary.Accepted, summary.Rejected,
		summary.VendorsCreated, summary.ZonesCreated, summary.DurationSeconds)

	return summary, nil
}

// deriveAll computes features for validated records across a bounded worker
// pool, writing results back in place so input order is preserved.
func (o *Orchestrator) deriveAll(ctx context.Context, outcomes []outcome) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i := range outcomes {
		if outcomes[i].reason != "" {
			continue
		}
		out := &outcomes[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out.features, out.reason = o.deriver.Derive(out.parsed)
			return nil
		})
	}
	return g.Wait()
}

// persistTrip writes one trip's vendor, pickup zone, dropoff zone and row as
// a single transaction. Zone and vendor upserts happen before the trip
// insert, so readers never observe a trip with unresolvable references; a
// failed insert rolls all three back.
func (o *Orchestrator) persistTrip(rec *models.ParsedRecord, features DerivedFeatures, summary *models.IngestSummary) error {
	var vendorCreated, pickupCreated, dropoffCreated bool

	err := database.Transaction(o.db, func(tx *sql.Tx) error {
		vendorID, created, err := o.vendors.Upsert(tx, rec.VendorKey)
		if err != nil {
			return err
		}
		vendorCreated = created

		pickupZoneID, created, err := o.assigner.Assign(tx, rec.PickupLatitude, rec.PickupLongitude)
		if err != nil {
			return err
		}
		pickupCreated = created

		dropoffZoneID, created, err := o.assigner.Assign(tx, rec.DropoffLatitude, rec.DropoffLongitude)
		if err != nil {
			return err
		}
		dropoffCreated = created

		return o.trips.Insert(tx, models.Trip{
			ID:               rec.ID,
			VendorID:         vendorID,
			PickupDatetime:   rec.PickupDatetime.Format(models.TimeLayout),
			DropoffDatetime:  rec.DropoffDatetime.Format(models.TimeLayout),
			PassengerCount:   rec.PassengerCount,
			PickupLatitude:   rec.PickupLatitude,
			PickupLongitude:  rec.PickupLongitude,
			DropoffLatitude:  rec.DropoffLatitude,
			DropoffLongitude: rec.DropoffLongitude,
			StoreAndFwdFlag:  rec.StoreAndFwdFlag,
			TripDuration:     rec.TripDuration,
			TripDistanceKm:   features.DistanceKm,
			TripSpeedKmh:     features.SpeedKmh,
			FareAmount:       features.FareAmount,
			FarePerKm:        features.FarePerKm,
			PickupZoneID:     pickupZoneID,
			DropoffZoneID:    dropoffZoneID,
		})
	})
	if err != nil {
		return err
	}

	summary.Accepted++
	if vendorCreated {
		summary.VendorsCreated++
	}
	if pickupCreated {
		summary.ZonesCreated++
	}
	if dropoffCreated {
		summary.ZonesCreated++
	}

	if o.collector != nil {
		o.collector.TripsAccepted.Inc()
		if vendorCreated {
			o.collector.VendorsCreated.Inc()
		}
		if pickupCreated {
			o.collector.ZonesCreated.Inc()
		}
		if dropoffCreated {
			o.collector.ZonesCreated.Inc()
		}
	}
	return nil
}
