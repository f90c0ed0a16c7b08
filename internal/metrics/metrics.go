package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the application's prometheus instruments
type Collector struct {
	reg *prometheus.Registry

	RecordsIngested prometheus.Counter
	TripsAccepted   prometheus.Counter
	TripsRejected   *prometheus.CounterVec // reason label
	VendorsCreated  prometheus.Counter
	ZonesCreated    prometheus.Counter

	QueriesServed *prometheus.CounterVec // endpoint label

	IngestDuration prometheus.Histogram
}

// NewCollector builds and registers all instruments on a private registry
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		RecordsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mobility_records_ingested_total",
			Help: "Total raw records fed into the ingestion pipeline.",
		}),
		TripsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mobility_trips_accepted_total",
			Help: "Total clean trips persisted.",
		}),
		TripsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mobility_trips_rejected_total",
			Help: "Total records rejected during ingestion.",
		}, []string{"reason"}),
		VendorsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mobility_vendors_created_total",
			Help: "Total vendors created lazily during ingestion.",
		}),
		ZonesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mobility_zones_created_total",
			Help: "Total zones created lazily during ingestion.",
		}),
		QueriesServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mobility_queries_served_total",
			Help: "Total read-side queries served.",
		}, []string{"endpoint"}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mobility_ingest_duration_seconds",
			Help:    "Duration of full ingestion runs.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
	}

	reg.MustRegister(
		c.RecordsIngested, c.TripsAccepted, c.TripsRejected,
		c.VendorsCreated, c.ZonesCreated, c.QueriesServed, c.IngestDuration,
	)

	return c
}

// Handler exposes the registry in prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
