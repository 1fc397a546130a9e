package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/kilianp07/fleetsoc/core/metrics"
)

// PromRecorder records ingest events in Prometheus metrics.
type PromRecorder struct {
	gatherer    prometheus.Gatherer
	files       prometheus.Counter
	rows        prometheus.Counter
	socRows     prometheus.Counter
	duration    prometheus.Histogram
	maintenance *prometheus.GaugeVec
	missing     *prometheus.GaugeVec
}

// NewPromRecorder registers ingest metrics on a dedicated registry.
func NewPromRecorder() (*PromRecorder, error) {
	return NewPromRecorderWithRegistry(prometheus.NewRegistry())
}

// NewPromRecorderWithRegistry registers metrics on reg. A nil registry
// creates a new one.
func NewPromRecorderWithRegistry(reg *prometheus.Registry) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r := &PromRecorder{
		gatherer: reg,
		files: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fleetsoc_files_loaded_total",
			Help: "Number of CSV exports loaded",
		}),
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fleetsoc_rows_loaded_total",
			Help: "Number of telemetry rows loaded",
		}),
		socRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fleetsoc_soc_rows_selected_total",
			Help: "Number of state of charge rows kept for the requested vehicles",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fleetsoc_ingest_duration_seconds",
			Help:    "Time spent loading and filtering telemetry",
			Buckets: prometheus.DefBuckets,
		}),
		maintenance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fleetsoc_vehicle_maintenance_needed",
			Help: "1 when the lowest state of charge of the vehicle is below the threshold",
		}, []string{"vehicle_id"}),
		missing: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fleetsoc_vehicle_readings_missing",
			Help: "1 when a requested vehicle has no state of charge reading",
		}, []string{"vehicle_id"}),
	}
	for _, c := range []prometheus.Collector{r.files, r.rows, r.socRows, r.duration, r.maintenance, r.missing} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RecordIngest updates counters and per vehicle gauges.
func (r *PromRecorder) RecordIngest(ev coremetrics.IngestEvent) error {
	r.files.Add(float64(ev.Files))
	r.rows.Add(float64(ev.Rows))
	r.socRows.Add(float64(ev.SOCRows))
	r.duration.Observe(ev.Duration.Seconds())

	flagged := make(map[int]bool, len(ev.Flagged))
	for _, id := range ev.Flagged {
		flagged[id] = true
	}
	missing := make(map[int]bool, len(ev.Missing))
	for _, id := range ev.Missing {
		missing[id] = true
	}
	for _, id := range ev.Vehicles {
		label := strconv.Itoa(id)
		r.maintenance.WithLabelValues(label).Set(boolGauge(flagged[id]))
		r.missing.WithLabelValues(label).Set(boolGauge(missing[id]))
	}
	return nil
}

// Handler exposes the recorder registry in the Prometheus text format.
func (r *PromRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
