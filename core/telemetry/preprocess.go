package telemetry

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // analysis timezones must resolve on hosts without zoneinfo

	"github.com/kilianp07/fleetsoc/core/model"
)

// Defaults of the state of charge extraction.
const (
	// TimeLayout matches the DD/MM/YYYY HH:MM:SS timestamps of the export.
	TimeLayout      = "2/1/2006 15:04:05"
	DefaultSOCParam = "Battery SOC"
	DefaultTimezone = "Asia/Kolkata"
)

// Options controls how readings are resolved and selected.
type Options struct {
	// Location is the analysis timezone. Export timestamps are UTC.
	Location *time.Location
	// SOCParam is the can_param value identifying state of charge rows.
	SOCParam string
	// TimeLayout overrides the timestamp layout of the export.
	TimeLayout string
}

// DefaultOptions returns options converting to Indian Standard Time and
// selecting "Battery SOC" rows.
func DefaultOptions() Options {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		// embedded tzdata always carries the zone
		panic(err)
	}
	return Options{Location: loc, SOCParam: DefaultSOCParam, TimeLayout: TimeLayout}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Location == nil {
		o.Location = def.Location
	}
	if o.SOCParam == "" {
		o.SOCParam = def.SOCParam
	}
	if o.TimeLayout == "" {
		o.TimeLayout = def.TimeLayout
	}
	return o
}

// ParseTime parses an export timestamp as UTC and converts it to loc.
func ParseTime(raw, layout string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(layout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// Resolve converts the timestamp of every reading of t and derives its hour of
// day. The first timestamp that does not match the layout aborts the run.
func Resolve(t *model.Table, opts Options) ([]model.SOCReading, error) {
	opts = opts.withDefaults()
	out := make([]model.SOCReading, 0, t.Len())
	if t == nil {
		return out, nil
	}
	for _, r := range t.Readings {
		at, err := ParseTime(r.Time, opts.TimeLayout, opts.Location)
		if err != nil {
			return nil, &ParseError{File: r.Source, Line: r.Line, Column: ColTime, Value: r.Time, Err: err}
		}
		out = append(out, model.SOCReading{Reading: r, At: at, Hour: at.Hour()})
	}
	return out, nil
}

// Filter keeps the rows whose parameter is param and whose vehicle is one of
// ids, preserving order. Filtering its own output returns it unchanged.
func Filter(rows []model.SOCReading, ids []int, param string) []model.SOCReading {
	want := model.NewVehicleSet(ids)
	out := make([]model.SOCReading, 0, len(rows))
	for _, r := range rows {
		if r.Param == param && want.Contains(r.VehicleID) {
			out = append(out, r)
		}
	}
	return out
}

// Preprocess resolves timestamps of the whole table then selects the state of
// charge rows of the requested vehicles.
func Preprocess(t *model.Table, ids []int, opts Options) ([]model.SOCReading, error) {
	opts = opts.withDefaults()
	rows, err := Resolve(t, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve timestamps: %w", err)
	}
	return Filter(rows, ids, opts.SOCParam), nil
}

// CountByVehicle returns the number of rows per vehicle of rows.
func CountByVehicle(rows []model.SOCReading) map[int]int {
	out := make(map[int]int)
	for _, r := range rows {
		out[r.VehicleID]++
	}
	return out
}
