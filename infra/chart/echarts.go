// Package chart renders state of charge figures with go-echarts.
package chart

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"

	corechart "github.com/kilianp07/fleetsoc/core/chart"
)

// symbols maps the figure marker cycle to echarts symbols.
var symbols = map[string]string{
	"o": "circle",
	"s": "rect",
	"D": "diamond",
	"^": "triangle",
	"v": "path://M0,0 L10,0 L5,10 Z",
	"<": "path://M10,0 L10,10 L0,5 Z",
	">": "path://M0,0 L0,10 L10,5 Z",
	"p": "path://M5,0 L10,3.8 L8.1,10 L1.9,10 L0,3.8 Z",
	"P": "path://M3.5,0 H6.5 V3.5 H10 V6.5 H6.5 V10 H3.5 V6.5 H0 V3.5 H3.5 Z",
	"h": "path://M5,0 L9.33,2.5 L9.33,7.5 L5,10 L0.67,7.5 L0.67,2.5 Z",
	"H": "path://M2.5,0.67 L7.5,0.67 L10,5 L7.5,9.33 L2.5,9.33 L0,5 Z",
	"*": "path://M5,0 L6.18,3.82 L10,3.82 L6.91,6.18 L8.09,10 L5,7.64 L1.91,10 L3.09,6.18 L0,3.82 L3.82,3.82 Z",
}

// Options controls the rendered page.
type Options struct {
	// ChartID identifies the chart in the page. It must be a valid JS
	// identifier suffix; a random one is generated when empty.
	ChartID string
	Width   string
	Height  string
}

func (o Options) withDefaults() Options {
	if o.ChartID == "" {
		o.ChartID = NewChartID()
	}
	if o.Width == "" {
		o.Width = "1200px"
	}
	if o.Height == "" {
		o.Height = "800px"
	}
	return o
}

// NewChartID returns a random identifier usable as a chart id.
func NewChartID() string {
	return "soc" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Symbol returns the echarts symbol of a figure marker.
func Symbol(marker string) string {
	if s, ok := symbols[marker]; ok {
		return s
	}
	return "circle"
}

// Scatter maps fig to a go-echarts 3D scatter chart.
func Scatter(fig *corechart.Figure, o Options) *charts.Scatter3D {
	o = o.withDefaults()
	sc := charts.NewScatter3D()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fig.Title,
			Width:     o.Width,
			Height:    o.Height,
			ChartID:   o.ChartID,
		}),
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithLegendOpts(opts.Legend{Show: true, Orient: "vertical", Left: "right"}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: fig.X.Label, Type: "category", Data: hourCategories(fig.X)}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: fig.Y.Label, Type: "category", Data: tickLabels(fig.Y)}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: fig.Z.Label, Type: "value", Min: fig.Z.Min, Max: fig.Z.Max}),
	)
	for _, s := range fig.Series {
		data := make([]opts.Chart3DData, 0, len(s.Points))
		for _, p := range s.Points {
			data = append(data, opts.Chart3DData{
				Value: []interface{}{p.Hour, strconv.Itoa(p.VehicleID), p.SOC},
			})
		}
		sc.AddSeries(s.Label, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
			withSymbol(Symbol(s.Marker)),
		)
	}
	// 3D axes take tick spacing and label formatting only through setOption.
	sc.AddJSFuncs(axisLabelJS(fig, o.ChartID))
	return sc
}

// Render writes fig as a standalone HTML page to w.
func Render(w io.Writer, fig *corechart.Figure, o Options) error {
	if fig == nil {
		return fmt.Errorf("render: nil figure")
	}
	if err := Scatter(fig, o).Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func withSymbol(symbol string) charts.SeriesOpts {
	return func(s *charts.SingleSeries) {
		s.Symbol = symbol
	}
}

// hourCategories labels every hour between the axis bounds, leaving hours
// without a tick blank.
func hourCategories(ax corechart.Axis) []string {
	labels := make([]string, int(ax.Max-ax.Min)+1)
	for _, t := range ax.Ticks {
		i := int(t.Value - ax.Min)
		if i >= 0 && i < len(labels) {
			labels[i] = t.Label
		}
	}
	return labels
}

func tickLabels(ax corechart.Axis) []string {
	out := make([]string, len(ax.Ticks))
	for i, t := range ax.Ticks {
		out[i] = t.Label
	}
	return out
}

func axisLabelJS(fig *corechart.Figure, id string) string {
	step := 10.0
	if len(fig.Z.Ticks) > 1 {
		step = fig.Z.Ticks[1].Value - fig.Z.Ticks[0].Value
	}
	return fmt.Sprintf(
		"goecharts_%s.setOption({xAxis3D:{axisLabel:{interval:0,rotate:%g}},zAxis3D:{interval:%g,axisLabel:{formatter:'{value}%%'}}});",
		id, fig.X.LabelRotation, step,
	)
}
