package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain/repository.Metrics using Prometheus.
type Recorder struct {
	recordsIngested *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	lastModalPrice  *prometheus.GaugeVec
	latency         *prometheus.HistogramVec
	advisoryCalls   *prometheus.CounterVec
}

// New creates a Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		recordsIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kisansense_records_ingested_total",
				Help: "Total mandi price records ingested per backend",
			},
			[]string{"backend", "commodity"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kisansense_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastModalPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kisansense_last_modal_price_rupees",
				Help: "Last recorded modal price for a commodity-market pair",
			},
			[]string{"commodity", "market"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kisansense_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		advisoryCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kisansense_advisory_calls_total",
				Help: "Advisory service calls by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// RecordIngested records a price record sent to a backend.
func (r *Recorder) RecordIngested(backend, commodity string) {
	r.recordsIngested.WithLabelValues(backend, commodity).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the latest modal price for a pair.
func (r *Recorder) RecordLastPrice(commodity, market string, price float64) {
	r.lastModalPrice.WithLabelValues(commodity, market).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordAdvisoryCall records an advisory call outcome (ok, error, fallback).
func (r *Recorder) RecordAdvisoryCall(outcome string) {
	r.advisoryCalls.WithLabelValues(outcome).Inc()
}
