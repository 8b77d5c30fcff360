package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// globalFlags are shared by every subcommand and override values from the config file.
type globalFlags struct {
	configPath  string
	rows        int
	cols        int
	seed        uint64
	logLevel    string
	metricsAddr string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "blockfall",
		Short:         "A falling-block puzzle game",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to a YAML config file")
	pf.IntVar(&flags.rows, "rows", 0, "board height (overrides config)")
	pf.IntVar(&flags.cols, "cols", 0, "board width (overrides config)")
	pf.Uint64Var(&flags.seed, "seed", 0, "piece sequence seed; 0 picks one at random")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	pf.StringVar(&flags.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")

	root.AddCommand(newPlayCmd(flags), newTermCmd(flags), newSoakCmd(flags))
	return root
}

// loadConfig reads the config file and applies any flags set on the command line.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("rows") {
		cfg.Board.Rows = flags.rows
	}
	if changed("cols") {
		cfg.Board.Cols = flags.cols
	}
	if changed("seed") {
		cfg.Seed = flags.seed
	}
	if changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if changed("metrics-addr") {
		cfg.Metrics.Addr = flags.metricsAddr
	}
	return cfg, cfg.Validate()
}

// sessionFactory returns a constructor for new games. With a fixed seed every game shares one
// piece stream, so a restarted game continues the sequence instead of repeating it.
func sessionFactory(cfg config.Config) func() game.Session {
	var opts []game.Option
	if cfg.Seed != 0 {
		opts = append(opts, game.WithSource(game.NewRandomSource(cfg.Seed)))
	}
	return func() game.Session {
		return game.NewSession(cfg.Board.Rows, cfg.Board.Cols, opts...)
	}
}

// newScheduler builds a scheduler with gravity, logging and, when a metrics address is set,
// prometheus observation.
func newScheduler(cfg config.Config, session game.Session, logger *slog.Logger) (*game.Scheduler, *prometheus.Registry) {
	scheduler := game.NewScheduler(session)
	scheduler.Register(&game.GravitySystem{Interval: cfg.Tick})
	scheduler.Observe(game.LogObserver{Logger: logger})

	if cfg.Metrics.Addr == "" {
		return scheduler, nil
	}
	reg := prometheus.NewRegistry()
	scheduler.Observe(telemetry.New(reg))
	return scheduler, reg
}

// runWithMetrics runs the front end on the calling goroutine and, if reg is set, the metrics
// endpoint beside it. Windowing front ends must stay on the main goroutine. The endpoint stops
// when the front end returns; its error is reported only if the front end succeeded.
func runWithMetrics(ctx context.Context, cfg config.Config, reg *prometheus.Registry, logger *slog.Logger, run func(context.Context) error) error {
	if reg == nil {
		return run(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return telemetry.Serve(ctx, cfg.Metrics.Addr, reg, logger)
	})

	runErr := run(ctx)
	cancel()
	if err := g.Wait(); err != nil && runErr == nil {
		return fmt.Errorf("metrics endpoint: %w", err)
	}
	return runErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
