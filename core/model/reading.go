package model

import (
	"math"
	"time"
)

// Reading is one telemetry row exported from the fleet CAN bus.
type Reading struct {
	VehicleID int
	Time      string // raw wall-clock text as exported, see telemetry.TimeLayout
	Param     string
	Value     float64 // NaN when the exported cell was empty
	Source    string  // file the row was read from
	Line      int     // line of the row within Source
}

// HasValue reports whether the reading carries a numeric value.
func (r Reading) HasValue() bool { return !math.IsNaN(r.Value) }

// Table is the union of all readings of a telemetry export, in file order.
type Table struct {
	Files    []string
	Readings []Reading
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Readings)
}

// Append adds the rows read from file to the table.
func (t *Table) Append(file string, rows []Reading) {
	t.Files = append(t.Files, file)
	t.Readings = append(t.Readings, rows...)
}

// SOCReading is a state of charge reading with its timestamp resolved in the
// analysis timezone.
type SOCReading struct {
	Reading
	At   time.Time
	Hour int // 0-23, hour of day of At
}

// VehicleSet is a lookup set of vehicle identifiers.
type VehicleSet map[int]struct{}

// NewVehicleSet builds a set from ids. Duplicates collapse.
func NewVehicleSet(ids []int) VehicleSet {
	s := make(VehicleSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is part of the set.
func (s VehicleSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}
