package config

import (
	"fmt"
	"time"

	"github.com/kilianp07/fleetsoc/core/chart"
	"github.com/kilianp07/fleetsoc/core/telemetry"
)

// AnalysisConfig controls how state of charge readings are extracted and
// flagged.
type AnalysisConfig struct {
	// Timezone is the IANA zone the UTC export timestamps are converted to.
	Timezone string `json:"timezone"`
	// SOCParam is the can_param value of state of charge rows.
	SOCParam string `json:"soc_param"`
	// TimeLayout is the Go layout of can_time.
	TimeLayout string `json:"time_layout"`
	// MaintenanceThreshold flags vehicles whose lowest SOC is below it.
	MaintenanceThreshold float64 `json:"maintenance_threshold"`
}

func (c *AnalysisConfig) SetDefaults() {
	if c.Timezone == "" {
		c.Timezone = telemetry.DefaultTimezone
	}
	if c.SOCParam == "" {
		c.SOCParam = telemetry.DefaultSOCParam
	}
	if c.TimeLayout == "" {
		c.TimeLayout = telemetry.TimeLayout
	}
	if c.MaintenanceThreshold == 0 {
		c.MaintenanceThreshold = chart.DefaultOptions().MaintenanceThreshold
	}
}

func (c AnalysisConfig) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	if c.SOCParam == "" {
		return fmt.Errorf("soc_param is required")
	}
	if c.MaintenanceThreshold < 0 || c.MaintenanceThreshold > 100 {
		return fmt.Errorf("maintenance_threshold %v outside [0, 100]", c.MaintenanceThreshold)
	}
	return nil
}

// TelemetryOptions converts the section into preprocessing options.
func (c AnalysisConfig) TelemetryOptions() (telemetry.Options, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return telemetry.Options{}, err
	}
	return telemetry.Options{Location: loc, SOCParam: c.SOCParam, TimeLayout: c.TimeLayout}, nil
}

// ChartOptions converts the section into figure options.
func (c AnalysisConfig) ChartOptions() chart.Options {
	o := chart.DefaultOptions()
	o.MaintenanceThreshold = c.MaintenanceThreshold
	return o
}
