package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/plus3/blockfall/internal/tui"
	"github.com/spf13/cobra"
)

func newTermCmd(flags *globalFlags) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Play in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			// The terminal belongs to the UI, so logs go to a file or nowhere.
			logger := discardLogger()
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				logger = cfg.Log.Logger(f)
			}

			newSession := sessionFactory(cfg)
			session := newSession()
			scheduler, reg := newScheduler(cfg, session, logger)
			logger.Info("starting game", "session", session.ID(), "frontend", "term")

			return runWithMetrics(cmd.Context(), cfg, reg, logger, func(ctx context.Context) error {
				program := tea.NewProgram(tui.New(scheduler, newSession),
					tea.WithAltScreen(),
					tea.WithContext(ctx))
				_, err := program.Run()
				return terminalExit(ctx, err)
			})
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	return cmd
}

// terminalExit treats a program killed by context cancellation, such as on SIGINT, as a clean
// exit.
func terminalExit(ctx context.Context, err error) error {
	if err == nil || (errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return nil
	}
	return fmt.Errorf("run terminal ui: %w", err)
}
