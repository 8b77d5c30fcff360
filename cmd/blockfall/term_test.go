package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalExit(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	live := context.Background()

	t.Run("clean run", func(t *testing.T) {
		assert.NoError(t, terminalExit(live, nil))
	})

	t.Run("killed by cancellation", func(t *testing.T) {
		killed := fmt.Errorf("%w: %w", tea.ErrProgramKilled, context.Canceled)
		assert.NoError(t, terminalExit(cancelled, killed))
	})

	t.Run("killed without cancellation", func(t *testing.T) {
		err := terminalExit(live, tea.ErrProgramKilled)
		require.Error(t, err)
		assert.ErrorIs(t, err, tea.ErrProgramKilled)
		assert.Contains(t, err.Error(), "run terminal ui")
	})

	t.Run("other failure", func(t *testing.T) {
		boom := errors.New("no tty")
		err := terminalExit(cancelled, boom)
		assert.ErrorIs(t, err, boom)
	})
}
