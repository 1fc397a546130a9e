package config

import (
	"fmt"
	"time"
)

// SentryConfig enables error reporting. Reporting stays off while DSN is
// empty.
type SentryConfig struct {
	DSN              string  `json:"dsn"`
	Environment      string  `json:"environment"`
	Release          string  `json:"release"`
	TracesSampleRate float64 `json:"traces_sample_rate"`
	// FlushSeconds bounds the wait for pending events on exit.
	FlushSeconds int `json:"flush_seconds"`
}

func (c *SentryConfig) SetDefaults() {
	if c.Environment == "" {
		c.Environment = "production"
	}
	if c.FlushSeconds == 0 {
		c.FlushSeconds = 2
	}
}

func (c SentryConfig) Validate() error {
	if c.TracesSampleRate < 0 || c.TracesSampleRate > 1 {
		return fmt.Errorf("traces_sample_rate %g outside [0, 1]", c.TracesSampleRate)
	}
	if c.FlushSeconds < 0 {
		return fmt.Errorf("flush_seconds must not be negative")
	}
	return nil
}

// FlushTimeout returns FlushSeconds as a duration.
func (c SentryConfig) FlushTimeout() time.Duration {
	return time.Duration(c.FlushSeconds) * time.Second
}
