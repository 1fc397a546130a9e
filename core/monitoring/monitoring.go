// Package monitoring reports run failures to an error tracker. The process
// wide monitor is a no-op until Init installs one.
package monitoring

import (
	"sync"
	"time"
)

// Monitor receives errors and the pipeline trail leading to them.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	// Breadcrumb records a pipeline stage attached to later captures.
	Breadcrumb(stage, message string, data map[string]any)
	Flush(timeout time.Duration)
}

type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) Breadcrumb(string, string, map[string]any) {}
func (NopMonitor) Flush(time.Duration)                       {}

var (
	mu      sync.RWMutex
	current Monitor = NopMonitor{}
)

// Init installs m. A nil monitor is ignored.
func Init(m Monitor) {
	if m == nil {
		return
	}
	mu.Lock()
	current = m
	mu.Unlock()
}

// Reset restores the no-op monitor.
func Reset() {
	mu.Lock()
	current = NopMonitor{}
	mu.Unlock()
}

func get() Monitor {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	get().CaptureException(err, tags)
}

func Breadcrumb(stage, message string, data map[string]any) {
	get().Breadcrumb(stage, message, data)
}

// Flush waits up to d for buffered events to be sent.
func Flush(d time.Duration) { get().Flush(d) }
