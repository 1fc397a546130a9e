package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kilianp07/fleetsoc/app"
	"github.com/kilianp07/fleetsoc/config"
	"github.com/kilianp07/fleetsoc/core/factory"
	coremon "github.com/kilianp07/fleetsoc/core/monitoring"
	coreviewer "github.com/kilianp07/fleetsoc/core/viewer"
	infrachart "github.com/kilianp07/fleetsoc/infra/chart"
	"github.com/kilianp07/fleetsoc/infra/logger"
	"github.com/kilianp07/fleetsoc/infra/metrics"
	"github.com/kilianp07/fleetsoc/infra/monitoring"
	_ "github.com/kilianp07/fleetsoc/infra/viewer"
)

var (
	cfgPath    string
	dirPath    string
	vehicles   string
	viewerType string
)

var rootCmd = &cobra.Command{
	Use:          "fleetsoc",
	Short:        "Plot bus battery state of charge by hour of day",
	Long:         "Loads every CSV telemetry export of a directory, keeps the Battery SOC readings of the requested buses and shows them as a 3D scatter chart.",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	rootCmd.Flags().StringVarP(&dirPath, "dir", "d", "", "directory holding the CSV exports (prompted when empty)")
	rootCmd.Flags().StringVarP(&vehicles, "vehicles", "v", "", "comma separated bus ids (prompted when empty)")
	rootCmd.Flags().StringVar(&viewerType, "viewer", "", "viewer backend overriding the configuration: http or stdout")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if viewerType != "" && viewerType != cfg.Viewer.Type {
		cfg.Viewer = factory.ModuleConfig{Type: viewerType}
	}

	runID := uuid.NewString()
	closer, err := logger.Setup(cfg.Logging.Options(runID))
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = closer.Close() }()
	log := logger.New("main")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry, runID)
	if err != nil {
		log.Warnf("sentry disabled: %v", err)
	} else {
		coremon.Init(mon)
	}
	defer coremon.Flush(cfg.Sentry.FlushTimeout())

	if err := analyze(ctx, cmd, cfg, runID); err != nil {
		coremon.CaptureException(err, map[string]string{"component": "cli"})
		return err
	}
	return nil
}

func analyze(ctx context.Context, cmd *cobra.Command, cfg *config.Config, runID string) error {
	req, err := readRequest(cmd.InOrStdin(), cmd.ErrOrStderr(), dirPath, vehicles)
	if err != nil {
		return err
	}

	rec, err := metrics.NewPromRecorder()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	an, err := app.New(cfg.Analysis, rec, logger.New("analyzer"))
	if err != nil {
		return err
	}
	res, err := an.Analyze(ctx, req)
	if err != nil {
		return err
	}

	v, err := coreviewer.New(cfg.Viewer)
	if err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	if h, ok := v.(interface{ Handle(string, http.Handler) }); ok {
		h.Handle("/metrics", rec.Handler())
	}
	chartID := "soc" + strings.ReplaceAll(runID, "-", "")
	return v.Show(ctx, res.Page(infrachart.Options{ChartID: chartID}))
}
