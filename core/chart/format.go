package chart

import (
	"fmt"
	"math"
	"strconv"
)

// Palette is the tab10 qualitative palette. Series i uses Palette[i%len].
var Palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Markers is the marker cycle. Series i uses Markers[i%len].
var Markers = []string{"o", "s", "D", "^", "v", "<", ">", "p", "P", "h", "H", "*"}

// FormatHour renders an hour-of-day tick on a 12-hour clock.
// Hours 0 and 12 both render as 12.
func FormatHour(v float64) string {
	h := int(v)
	disp := h % 12
	if disp == 0 {
		disp = 12
	}
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%02d:00 %s", disp, suffix)
}

// FormatPercent renders a state of charge tick as a percentage.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// SOCCeiling returns the upper bound of the state of charge axis: the next
// multiple of 10 at or above max, never below 10.
func SOCCeiling(max float64) float64 {
	c := math.Ceil(max/10) * 10
	if c < 10 {
		return 10
	}
	return c
}

// MaintenanceNeeded reports whether a vehicle whose lowest state of charge is
// min must be flagged. NaN never flags.
func MaintenanceNeeded(min, threshold float64) bool {
	return min < threshold
}

// ColorFor returns the palette color of series i.
func ColorFor(i int) string { return Palette[i%len(Palette)] }

// MarkerFor returns the marker of series i.
func MarkerFor(i int) string { return Markers[i%len(Markers)] }
