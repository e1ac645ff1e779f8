package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/locus"
	"github.com/aretw0/locus/internal/config"
	"github.com/aretw0/locus/internal/induction"
	"github.com/aretw0/locus/internal/logging"
	"github.com/aretw0/locus/internal/presentation/graph"
	"github.com/aretw0/locus/internal/presentation/report"
	"github.com/aretw0/locus/internal/presentation/tui"
	"github.com/aretw0/locus/pkg/adapters/file"
	loamAdapter "github.com/aretw0/locus/pkg/adapters/loam"
	"github.com/aretw0/locus/pkg/adapters/redis"
	"github.com/aretw0/locus/pkg/domain"
	"github.com/aretw0/locus/pkg/observability"
	"github.com/aretw0/locus/pkg/ports"
)

// LearnOptions contains all the configuration for the learn and graph commands.
// Empty string fields keep the value resolved from the config file and environment.
type LearnOptions struct {
	DomainPath  string
	TracesPath  string
	ConfigPath  string
	Coverage    string
	Keep        bool // keep declared predicates (ReplacePredicates=false)
	MetricsAddr string
	HaltRedis   string
	HaltKey     string
	Debug       bool
	Raw         bool
	Banner      bool
}

// session bundles what a command needs after configuration is resolved.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	engine *locus.Engine
	stop   func()
	ctx    context.Context
}

// RunLearn learns the domain and writes a markdown report to out.
func RunLearn(ctx context.Context, opts LearnOptions, out io.Writer) error {
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.stop()

	if opts.Banner && isTerminal(out) && !opts.Raw {
		tui.PrintBanner(out)
	}

	start := time.Now()
	d, model, err := s.engine.Run(s.ctx)
	if err != nil {
		return handleLearnError(err, s.logger)
	}
	s.logger.Info("learning complete", "machines", len(model.Machines), "duration", time.Since(start))

	return writeMarkdown(out, report.Markdown(d, model), opts.Raw)
}

// RunGraph learns the domain and writes a Mermaid diagram of its machines to out.
func RunGraph(ctx context.Context, opts LearnOptions, types []string, out io.Writer) error {
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.stop()

	_, model, err := s.engine.Run(s.ctx)
	if err != nil {
		return handleLearnError(err, s.logger)
	}
	_, err = io.WriteString(out, graph.GenerateMermaid(model, &graph.Overlay{Types: types}))
	return err
}

func openSession(ctx context.Context, opts LearnOptions) (*session, error) {
	if opts.DomainPath == "" || opts.TracesPath == "" {
		return nil, fmt.Errorf("both --domain and --traces are required")
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := createLogger(cfg, opts.Debug)
	coverage, _ := induction.ParseCoveragePolicy(cfg.Coverage)

	corpusLoader, err := createCorpusLoader(opts.TracesPath)
	if err != nil {
		return nil, err
	}

	engineOpts := []locus.Option{
		locus.WithLogger(logger),
		locus.WithCoverage(coverage),
		locus.WithReplacePredicates(cfg.Replace()),
		locus.WithDomainLoader(file.NewLoader(opts.DomainPath, "")),
		locus.WithCorpusLoader(corpusLoader),
	}
	if opts.Debug {
		engineOpts = append(engineOpts, locus.WithHooks(createDebugHooks(logger)))
	}

	s := &session{cfg: cfg, logger: logger, ctx: ctx}
	var cleanups []func()
	s.stop = func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics := observability.NewMetrics(reg)
		engineOpts = append(engineOpts, locus.WithHooks(metrics.Hooks()))

		srv, err := StartMetricsServer(cfg.MetricsAddr, reg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to start metrics server: %w", err)
		}
		cleanups = append(cleanups, func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				logger.Warn("metrics server shutdown failed", "error", err)
			}
		})
	}

	if cfg.Halt.RedisAddr != "" {
		flag := redis.New(cfg.Halt.RedisAddr, "", 0, redis.WithKey(cfg.Halt.Key))
		var cancel context.CancelFunc
		s.ctx, cancel = WatchHalt(ctx, flag, cfg.Halt.Interval, logger)
		cleanups = append(cleanups, func() {
			cancel()
			flag.Close()
		})
		logger.Debug("halt flag watching", "key", flag.Key(), "interval", cfg.Halt.Interval)
	}

	s.engine = locus.New(engineOpts...)
	return s, nil
}

// applyFlags overrides config values with explicitly set flags.
func applyFlags(cfg *config.Config, opts LearnOptions) {
	if opts.Coverage != "" {
		cfg.Coverage = opts.Coverage
	}
	if opts.Keep {
		keep := false
		cfg.ReplacePredicates = &keep
	}
	if opts.MetricsAddr != "" {
		cfg.MetricsAddr = opts.MetricsAddr
	}
	if opts.HaltRedis != "" {
		cfg.Halt.RedisAddr = opts.HaltRedis
	}
	if opts.HaltKey != "" {
		cfg.Halt.Key = opts.HaltKey
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}
}

// createCorpusLoader picks the Loam adapter for directories and the file
// adapter otherwise.
func createCorpusLoader(path string) (ports.CorpusLoader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("traces not found: %w", err)
	}
	if info.IsDir() {
		return loamAdapter.Open(path)
	}
	return file.NewLoader("", path), nil
}

// createLogger configures the application logger on Stderr.
func createLogger(cfg *config.Config, debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	return logging.New(level)
}

func createDebugHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnStage: func(ctx context.Context, e *domain.StageEvent) {
			logger.Debug("Stage", "stage", e.Stage, "type", e.Type, "states", e.States, "hypotheses", e.Hypotheses)
		},
	}
}

// handleLearnError turns cancellations into a short notice and passes
// everything else through.
func handleLearnError(err error, logger *slog.Logger) error {
	if errors.Is(err, domain.ErrCanceled) {
		logger.Warn("learning canceled", "error", err)
		return fmt.Errorf("learning canceled")
	}
	var cov *domain.CoverageError
	if errors.As(err, &cov) {
		return fmt.Errorf("%w (add traces where %s objects fill parameter %d of %s)", err, cov.Type, cov.Index, cov.Operator)
	}
	return err
}
