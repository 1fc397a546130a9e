package metrics

import "time"

// IngestEvent summarises one load and filter pass.
type IngestEvent struct {
	Files    int
	Rows     int
	SOCRows  int
	Vehicles []int // requested vehicles
	Missing  []int // requested vehicles without readings
	Flagged  []int // vehicles needing maintenance
	Duration time.Duration
}

// Recorder records ingest events for observability purposes.
type Recorder interface {
	RecordIngest(ev IngestEvent) error
}

// NopRecorder implements Recorder with a no-op method.
type NopRecorder struct{}

func (NopRecorder) RecordIngest(IngestEvent) error { return nil }
