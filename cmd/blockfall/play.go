package main

import (
	"context"
	"os"

	"github.com/plus3/blockfall/internal/window"
	"github.com/spf13/cobra"
)

func newPlayCmd(flags *globalFlags) *cobra.Command {
	var (
		cellSize int
		debug    bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("cell-size") {
				cfg.Window.CellSize = cellSize
			}
			if cmd.Flags().Changed("debug") {
				cfg.Window.Debug = debug
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := cfg.Log.Logger(os.Stderr)
			newSession := sessionFactory(cfg)
			session := newSession()
			scheduler, reg := newScheduler(cfg, session, logger)
			logger.Info("starting game",
				"session", session.ID(),
				"rows", cfg.Board.Rows,
				"cols", cfg.Board.Cols,
				"tick", cfg.Tick)

			w := window.New(scheduler, window.Options{
				CellSize:   cfg.Window.CellSize,
				NewSession: newSession,
				Logger:     logger,
				Debug:      cfg.Window.Debug,
			})
			return runWithMetrics(cmd.Context(), cfg, reg, logger, func(context.Context) error {
				return w.Run("Blockfall")
			})
		},
	}

	cmd.Flags().IntVar(&cellSize, "cell-size", 30, "cell size in pixels")
	cmd.Flags().BoolVar(&debug, "debug", false, "show the ImGui session inspector")
	return cmd
}
