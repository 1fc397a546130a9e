// Package metrics defines the observability hooks of an analysis run.
// Recorders receive one IngestEvent per run; PromRecorder in infra/metrics
// exposes them as Prometheus metrics.
package metrics
