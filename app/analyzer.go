package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kilianp07/fleetsoc/config"
	"github.com/kilianp07/fleetsoc/core/chart"
	coremetrics "github.com/kilianp07/fleetsoc/core/metrics"
	"github.com/kilianp07/fleetsoc/core/monitoring"
	"github.com/kilianp07/fleetsoc/core/model"
	"github.com/kilianp07/fleetsoc/core/telemetry"
	"github.com/kilianp07/fleetsoc/core/viewer"
	infrachart "github.com/kilianp07/fleetsoc/infra/chart"
	"github.com/kilianp07/fleetsoc/infra/logger"
)

// ErrNoVehicles is returned when a request names no vehicle.
var ErrNoVehicles = errors.New("no vehicle ids requested")

// Request selects the export directory and the vehicles to plot.
type Request struct {
	Dir        string
	VehicleIDs []int
}

// Result holds every stage output of one analysis.
type Result struct {
	Table  *model.Table
	SOC    []model.SOCReading
	Figure *chart.Figure
}

// Page renders the figure of the result as an HTML page.
func (r *Result) Page(opts infrachart.Options) viewer.Page {
	return viewer.PageFunc(func(w io.Writer) error {
		return infrachart.Render(w, r.Figure, opts)
	})
}

// Analyzer loads, filters and lays out state of charge telemetry.
type Analyzer struct {
	telemetry telemetry.Options
	chart     chart.Options
	recorder  coremetrics.Recorder
	log       logger.Logger
}

// New creates an Analyzer from the analysis configuration.
func New(cfg config.AnalysisConfig, rec coremetrics.Recorder, log logger.Logger) (*Analyzer, error) {
	topts, err := cfg.TelemetryOptions()
	if err != nil {
		return nil, fmt.Errorf("analysis config: %w", err)
	}
	if rec == nil {
		rec = coremetrics.NopRecorder{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Analyzer{telemetry: topts, chart: cfg.ChartOptions(), recorder: rec, log: log}, nil
}

// Analyze runs the load, preprocess and layout stages for req.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	if len(req.VehicleIDs) == 0 {
		return nil, ErrNoVehicles
	}
	start := time.Now()

	tbl, err := telemetry.LoadDir(req.Dir)
	if err != nil {
		return nil, fmt.Errorf("load telemetry: %w", err)
	}
	loaded := map[string]any{"dir": req.Dir, "files": len(tbl.Files), "rows": tbl.Len()}
	a.log.Infow("telemetry loaded", loaded)
	monitoring.Breadcrumb("load", "telemetry loaded", loaded)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	soc, err := telemetry.Preprocess(tbl, req.VehicleIDs, a.telemetry)
	if err != nil {
		return nil, fmt.Errorf("preprocess: %w", err)
	}
	counts := telemetry.CountByVehicle(soc)
	var missing []int
	for _, id := range uniq(req.VehicleIDs) {
		if counts[id] == 0 {
			missing = append(missing, id)
			a.log.Warnf("no %q readings for vehicle %d", a.telemetry.SOCParam, id)
		}
	}
	selected := map[string]any{"rows": len(soc), "vehicles": len(counts), "missing": missing}
	a.log.Infow("soc readings selected", selected)
	monitoring.Breadcrumb("preprocess", "soc readings selected", selected)

	ev := coremetrics.IngestEvent{
		Files:    len(tbl.Files),
		Rows:     tbl.Len(),
		SOCRows:  len(soc),
		Vehicles: uniq(req.VehicleIDs),
		Missing:  missing,
	}
	fig, err := chart.Build(soc, req.VehicleIDs, a.chart)
	if err == nil {
		ev.Flagged = fig.MaintenanceVehicles()
	}
	ev.Duration = time.Since(start)
	if rerr := a.recorder.RecordIngest(ev); rerr != nil {
		a.log.Warnf("record ingest metrics: %v", rerr)
	}
	if err != nil {
		return nil, fmt.Errorf("build figure: %w", err)
	}

	for _, id := range ev.Flagged {
		a.log.Warnf("vehicle %d needs maintenance: state of charge fell below %g%%", id, a.chart.MaintenanceThreshold)
	}
	a.log.Debugw("figure built", map[string]any{"series": len(fig.Series), "points": fig.Points(), "soc_max": fig.Z.Max})
	return &Result{Table: tbl, SOC: soc, Figure: fig}, nil
}

func uniq(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
