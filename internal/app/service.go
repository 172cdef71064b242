// Package app wires the pipeline components into runnable tasks: the
// feature build and the player identity resolution.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/okian/fastbreak/internal/adapters/tabular"
	"github.com/okian/fastbreak/internal/config"
	"github.com/okian/fastbreak/internal/domain/features"
	"github.com/okian/fastbreak/internal/domain/model"
	"github.com/okian/fastbreak/internal/domain/resolve"
	"github.com/okian/fastbreak/internal/domain/scoring"
	"github.com/okian/fastbreak/pkg/logger"
	"github.com/okian/fastbreak/pkg/metrics"
)

// Stage names used in timing metrics.
const (
	stageLoad    = "load"
	stageBuild   = "build"
	stageWrite   = "write"
	stageResolve = "resolve"
)

// Service runs the batch pipeline against one immutable configuration.
type Service struct {
	cfg     *config.Config
	logger  logger.Logger
	metrics *metrics.Manager
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets a custom metrics manager for the service.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New constructs a Service around a loaded configuration.
func New(cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		cfg:     cfg,
		logger:  logger.Get(),
		metrics: metrics.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildFeatures runs the Feature Engine end to end: discover season
// tables, load them, build the golden table, write it once. Any failure
// here is a broken precondition and aborts the run.
func (s *Service) BuildFeatures(ctx context.Context) (features.Summary, error) {
	runID := uuid.New().String()
	s.logger.Info(ctx, "starting feature build",
		logger.String("run_id", runID),
		logger.Any("seasons", s.cfg.Seasons),
		logger.String("scoring_system", s.cfg.ScoringSystem))

	loadStart := time.Now()
	files, err := tabular.DiscoverSeasonFiles(ctx, s.cfg.RawDataDir, s.cfg.Seasons)
	if err != nil {
		return features.Summary{}, err
	}
	weights, err := scoring.LoadSystem(ctx, s.cfg.ScoringRulesetsFile, s.cfg.ScoringSystem)
	if err != nil {
		return features.Summary{}, err
	}

	seasons := make([][]model.GameRecord, 0, len(files))
	for _, f := range files {
		records, err := tabular.ReadGameLogs(ctx, f.Path, f.Season)
		if err != nil {
			return features.Summary{}, err
		}
		s.logger.Info(ctx, "loaded season gamelogs",
			logger.String("run_id", runID),
			logger.String("season", f.Season),
			logger.Int("rows", len(records)))
		s.metrics.RecordRowsIngested(len(records))
		seasons = append(seasons, records)
	}
	s.metrics.ObserveStageDuration(stageLoad, time.Since(loadStart))

	buildStart := time.Now()
	engine := features.New(weights,
		features.WithMinGames(s.cfg.MinGames),
		features.WithWindows(s.cfg.ShortWindow, s.cfg.LongWindow),
		features.WithRestDefault(s.cfg.RestDayDefault),
		features.WithWorkers(s.cfg.WorkerCount),
		features.WithLogger(s.logger),
	)
	rows, summary, err := engine.Build(ctx, seasons...)
	if err != nil {
		return summary, err
	}
	s.metrics.ObserveStageDuration(stageBuild, time.Since(buildStart))
	s.metrics.RecordPlayersDropped(summary.PlayersDropped)
	s.metrics.RecordColdStartRows(summary.ColdStartRows)
	s.metrics.RecordFeatureRows(summary.OutputRows)

	writeStart := time.Now()
	out := s.outputPath(s.cfg.FeaturesFile)
	if err := tabular.WriteFeatureTable(ctx, out, rows); err != nil {
		return summary, err
	}
	s.metrics.ObserveStageDuration(stageWrite, time.Since(writeStart))

	s.logger.Info(ctx, "golden table written",
		logger.String("run_id", runID),
		logger.String("path", out),
		logger.Int("rows", summary.OutputRows))
	return summary, nil
}

// ResolvePlayers runs the Entity Resolver over the two roster tables and
// writes the identity map. Low-confidence names degrade the report, never
// the run; unusable input tables abort it.
func (s *Service) ResolvePlayers(ctx context.Context) (resolve.Report, error) {
	runID := uuid.New().String()
	s.logger.Info(ctx, "starting player resolution",
		logger.String("run_id", runID),
		logger.String("roster", s.cfg.RosterFile),
		logger.String("observed", s.cfg.ObservedFile))

	start := time.Now()
	known, err := tabular.ReadRoster(ctx, s.cfg.RosterFile)
	if err != nil {
		return resolve.Report{}, err
	}
	observed, err := tabular.ReadObservedNames(ctx, s.cfg.ObservedFile)
	if err != nil {
		return resolve.Report{}, err
	}

	resolver, err := resolve.New(known,
		resolve.WithThreshold(s.cfg.MatchThreshold),
		resolve.WithOverrides(s.cfg.ManualOverrides),
		resolve.WithLogger(s.logger),
	)
	if err != nil {
		return resolve.Report{}, fmt.Errorf("roster %s: %w", s.cfg.RosterFile, err)
	}

	report, err := resolver.Resolve(ctx, observed)
	if err != nil {
		return report, err
	}
	for _, m := range report.Matches {
		s.metrics.RecordMatchAccepted(string(m.Method))
	}
	for range report.Dropped {
		s.metrics.RecordMatchDropped()
	}
	for i := 0; i < report.LookupErrors; i++ {
		s.metrics.RecordLookupError()
	}

	out := s.outputPath(s.cfg.PlayerMapFile)
	if err := tabular.WritePlayerMap(ctx, out, report.Matches); err != nil {
		return report, err
	}
	s.metrics.ObserveStageDuration(stageResolve, time.Since(start))

	s.logger.Info(ctx, "player map written",
		logger.String("run_id", runID),
		logger.String("path", out),
		logger.Int("matched", report.Matched()),
		logger.Int("total", report.Total()))
	return report, nil
}

// outputPath resolves an output file name against the processed data dir.
func (s *Service) outputPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.cfg.ProcessedDataDir, name)
}
