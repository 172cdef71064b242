package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/fastbreak/internal/app"
	"github.com/okian/fastbreak/internal/config"
	"github.com/okian/fastbreak/pkg/logger"
	"github.com/okian/fastbreak/pkg/metrics"
)

// Recognized pipeline tasks.
const (
	taskFeatures  = "features"
	taskPlayerMap = "playermap"
	taskAll       = "all"
)

// Metrics endpoint timeout constants.
const (
	metricsReadHeaderTimeout = 5 * time.Second
)

func main() {
	task := flag.String("task", taskAll, "Pipeline task to run: features, playermap, or all")
	flag.Parse()

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to flush logs: " + err.Error() + "\n")
		}
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Optional scrape endpoint for the duration of the run.
	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metrics.Default().Handler(),
			ReadHeaderTimeout: metricsReadHeaderTimeout,
		}
		go func() {
			log.Info(ctx, "serving metrics", logger.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Warn(ctx, "metrics endpoint failed", logger.Error(err))
			}
		}()
		defer srv.Close() //nolint:errcheck // best-effort shutdown at process exit
	}

	svc := app.New(cfg, app.WithLogger(log))

	switch *task {
	case taskFeatures:
		err = runFeatures(ctx, svc, log)
	case taskPlayerMap:
		err = runPlayerMap(ctx, svc, log)
	case taskAll:
		if err = runFeatures(ctx, svc, log); err == nil {
			err = runPlayerMap(ctx, svc, log)
		}
	default:
		os.Stderr.WriteString("unknown task: " + *task + " (want features, playermap, or all)\n")
		os.Exit(2)
	}
	if err != nil {
		log.Error(ctx, "pipeline failed", logger.Error(err))
		os.Exit(1)
	}
}

func runFeatures(ctx context.Context, svc *app.Service, log logger.Logger) error {
	summary, err := svc.BuildFeatures(ctx)
	if err != nil {
		return err
	}
	log.Info(ctx, "feature task summary",
		logger.Int("input_rows", summary.InputRows),
		logger.Int("qualified_players", summary.QualifiedPlayers),
		logger.Int("players_dropped", summary.PlayersDropped),
		logger.Int("cold_start_rows", summary.ColdStartRows),
		logger.Int("output_rows", summary.OutputRows))
	return nil
}

func runPlayerMap(ctx context.Context, svc *app.Service, log logger.Logger) error {
	report, err := svc.ResolvePlayers(ctx)
	if err != nil {
		return err
	}
	log.Info(ctx, "player map summary",
		logger.Int("matched", report.Matched()),
		logger.Int("dropped", len(report.Dropped)),
		logger.Int("total", report.Total()))
	return nil
}
