package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RoutesProcessed *prometheus.CounterVec
	DocumentsSent   *prometheus.CounterVec
	Acknowledgments *prometheus.CounterVec
	RequestSeconds  *prometheus.HistogramVec
	CycleErrors     prometheus.Counter
	LedgerSize      prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RoutesProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hermes_routes_processed_total",
			Help: "Total number of routes processed, labelled by outcome.",
		}, []string{"status"}),
		DocumentsSent: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hermes_printer_documents_total",
			Help: "Total number of label documents sent to the printer, labelled by result.",
		}, []string{"result"}),
		Acknowledgments: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hermes_route_acknowledgments_total",
			Help: "Total number of route acknowledgments, labelled by result.",
		}, []string{"result"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hermes_source_request_duration_seconds",
			Help:    "Duration of requests to the route source.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		CycleErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "hermes_cycle_errors_total",
			Help: "Total number of polling cycles that failed and triggered the cooldown.",
		}),
		LedgerSize: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "hermes_ledger_routes",
			Help: "Current number of routes recorded in the ledger.",
		}),
	}
}
