package monitoring

import (
	"errors"
	"testing"
	"time"
)

type recordMonitor struct {
	NopMonitor
	errs   []error
	tags   []map[string]string
	stages []string
}

func (r *recordMonitor) CaptureException(err error, tags map[string]string) {
	r.errs = append(r.errs, err)
	r.tags = append(r.tags, tags)
}

func (r *recordMonitor) Breadcrumb(stage, _ string, _ map[string]any) {
	r.stages = append(r.stages, stage)
}

func TestCaptureException_UsesInstalledMonitor(t *testing.T) {
	rec := &recordMonitor{}
	Init(rec)
	defer Reset()

	Breadcrumb("load", "2 files", nil)
	CaptureException(errors.New("boom"), map[string]string{"component": "cli"})
	CaptureException(nil, nil)
	Flush(time.Millisecond)

	if len(rec.errs) != 1 || rec.tags[0]["component"] != "cli" {
		t.Fatalf("capture not forwarded: %#v", rec)
	}
	if len(rec.stages) != 1 || rec.stages[0] != "load" {
		t.Fatalf("breadcrumb not forwarded: %v", rec.stages)
	}
}

func TestInit_IgnoresNil(t *testing.T) {
	Init(nil)
	if _, ok := get().(NopMonitor); !ok {
		t.Fatalf("nil monitor replaced the default: %T", get())
	}
}
