// Package chart builds the state of charge figure independently of any
// rendering library.
package chart

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/fleetsoc/core/model"
)

// ErrEmptyDataset is returned when no state of charge value survived the
// filter, so the axes cannot be scaled.
var ErrEmptyDataset = errors.New("no state of charge readings for the requested vehicles")

// Tick is a labeled axis position.
type Tick struct {
	Value float64
	Label string
}

// Axis describes one axis of the figure.
type Axis struct {
	Label    string
	Min, Max float64
	Ticks    []Tick
	// LabelRotation is in degrees.
	LabelRotation float64
}

// Point is one plotted reading.
type Point struct {
	Hour      int
	VehicleID int
	SOC       float64
}

// Series holds the points of a single vehicle.
type Series struct {
	VehicleID   int
	Label       string
	Color       string
	Marker      string
	Maintenance bool
	Points      []Point
}

// Figure is a renderable 3D scatter of state of charge by hour and vehicle.
type Figure struct {
	Title  string
	X      Axis // hour of day
	Y      Axis // vehicle
	Z      Axis // state of charge
	Series []Series
}

// Options tunes the figure. Zero fields fall back to DefaultOptions.
type Options struct {
	MaintenanceThreshold float64
	HourStep             int
	SOCStep              float64
	HourLabelRotation    float64
}

// DefaultOptions returns the standard figure layout.
func DefaultOptions() Options {
	return Options{MaintenanceThreshold: 20, HourStep: 2, SOCStep: 10, HourLabelRotation: 45}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaintenanceThreshold == 0 {
		o.MaintenanceThreshold = def.MaintenanceThreshold
	}
	if o.HourLabelRotation == 0 {
		o.HourLabelRotation = def.HourLabelRotation
	}
	if o.HourStep <= 0 {
		o.HourStep = def.HourStep
	}
	if o.SOCStep <= 0 {
		o.SOCStep = def.SOCStep
	}
	return o
}

// Title returns the figure title listing every requested vehicle.
func Title(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "Battery SOC Tracking for Specified Buses: " + strings.Join(parts, ", ")
}

// SeriesLabel returns the legend entry of a vehicle.
func SeriesLabel(id int, maintenance bool) string {
	if maintenance {
		return fmt.Sprintf("Bus ID: %d (Maintenance Needed)", id)
	}
	return fmt.Sprintf("Bus ID: %d", id)
}

// Build lays out rows as one series per requested vehicle, in request order.
func Build(rows []model.SOCReading, ids []int, opts Options) (*Figure, error) {
	opts = opts.withDefaults()

	var all []float64
	byVehicle := make(map[int][]Point)
	for _, r := range rows {
		if !r.HasValue() {
			continue
		}
		all = append(all, r.Value)
		byVehicle[r.VehicleID] = append(byVehicle[r.VehicleID], Point{Hour: r.Hour, VehicleID: r.VehicleID, SOC: r.Value})
	}
	if len(all) == 0 {
		return nil, ErrEmptyDataset
	}

	fig := &Figure{
		Title: Title(ids),
		X:     hourAxis(opts),
		Y:     vehicleAxis(ids),
		Z:     socAxis(floats.Max(all), opts),
	}
	for i, id := range ids {
		pts := byVehicle[id]
		maintenance := false
		if len(pts) > 0 {
			maintenance = MaintenanceNeeded(minSOC(pts), opts.MaintenanceThreshold)
		}
		fig.Series = append(fig.Series, Series{
			VehicleID:   id,
			Label:       SeriesLabel(id, maintenance),
			Color:       ColorFor(i),
			Marker:      MarkerFor(i),
			Maintenance: maintenance,
			Points:      pts,
		})
	}
	return fig, nil
}

// MaintenanceVehicles lists the flagged vehicles in series order.
func (f *Figure) MaintenanceVehicles() []int {
	var out []int
	for _, s := range f.Series {
		if s.Maintenance {
			out = append(out, s.VehicleID)
		}
	}
	return out
}

// Points returns the number of plotted points.
func (f *Figure) Points() int {
	n := 0
	for _, s := range f.Series {
		n += len(s.Points)
	}
	return n
}

func minSOC(pts []Point) float64 {
	v := make([]float64, len(pts))
	for i, p := range pts {
		v[i] = p.SOC
	}
	return floats.Min(v)
}

func hourAxis(opts Options) Axis {
	ax := Axis{Label: "Hour of Day", Min: 0, Max: 23, LabelRotation: opts.HourLabelRotation}
	for h := 0; h < 24; h += opts.HourStep {
		ax.Ticks = append(ax.Ticks, Tick{Value: float64(h), Label: FormatHour(float64(h))})
	}
	return ax
}

func vehicleAxis(ids []int) Axis {
	ax := Axis{Label: "Bus ID"}
	seen := make(map[int]bool, len(ids))
	for i, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		v := float64(id)
		if i == 0 || v < ax.Min {
			ax.Min = v
		}
		if i == 0 || v > ax.Max {
			ax.Max = v
		}
		ax.Ticks = append(ax.Ticks, Tick{Value: v, Label: strconv.Itoa(id)})
	}
	return ax
}

func socAxis(max float64, opts Options) Axis {
	ceil := SOCCeiling(max)
	ax := Axis{Label: "SOC (%)", Min: 0, Max: ceil}
	for v := 0.0; v <= ceil; v += opts.SOCStep {
		ax.Ticks = append(ax.Ticks, Tick{Value: v, Label: FormatPercent(v)})
	}
	return ax
}
