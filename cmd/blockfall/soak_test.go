package main

import (
	"bytes"
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSoak(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	report := runSoak(ctx, soakOptions{
		duration:   50 * time.Millisecond,
		frameTime:  100 * time.Millisecond,
		inputRate:  0.5,
		tick:       100 * time.Millisecond,
		seed:       7,
		newSession: func() game.Session { return game.NewSession(8, 10, game.WithSeed(7)) },
	}, discardLogger())

	require.Positive(t, report.TotalUpdates)
	assert.Len(t, report.UpdateTime.Samples, int(report.TotalUpdates))
	assert.LessOrEqual(t, report.UpdateTime.Min, report.UpdateTime.Avg)
	assert.LessOrEqual(t, report.UpdateTime.Avg, report.UpdateTime.Max)
	assert.Len(t, report.Systems, 2)

	var spawned int64
	for _, kc := range report.Spawns {
		spawned += kc.Count
	}
	// Every landing spawns a piece, either in the same game or in the next one.
	assert.Equal(t, report.Landings+1, spawned)
	assert.LessOrEqual(t, report.Games, report.Landings)
}

func TestSoakCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"soak", "--duration", "20ms", "--rows", "6", "--cols", "10", "--seed", "3", "--log-level", "error"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "# Blockfall Soak Test Report")
	assert.Contains(t, out.String(), "- I: ")
	assert.NotContains(t, out.String(), "## GC Pause Durations")
}

func TestSoakCommandRejectsBadRate(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"soak", "--input-rate", "1.5"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input-rate")
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	empty := Stats{}
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestParseScript(t *testing.T) {
	script, err := parseScript([]string{"left", " rotate", "down", "MoveRight"})
	require.NoError(t, err)
	assert.Equal(t, []game.Command{game.MoveLeft, game.Rotate, game.Descend, game.MoveRight}, script)

	_, err = parseScript([]string{"left", "hold"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse script")
}

func TestScriptedInputSystemCycles(t *testing.T) {
	var seen []game.Command
	scheduler := game.NewScheduler(game.NewSession(20, 10, game.WithSeed(1)))
	scheduler.Register(&ScriptedInputSystem{
		Rate:   1,
		Script: []game.Command{game.MoveLeft, game.MoveRight, game.Rotate},
		rng:    rand.New(rand.NewPCG(1, 2)),
	})
	scheduler.Observe(game.ObserverFunc(func(_ game.Session, outcome game.Outcome) {
		seen = append(seen, outcome.Command)
	}))

	for range 4 {
		scheduler.Once(0)
	}
	assert.Equal(t, []game.Command{game.MoveLeft, game.MoveRight, game.Rotate, game.MoveLeft}, seen)
}

func TestSoakCommandWithScript(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"soak", "--duration", "20ms", "--script", "left,rotate,down", "--log-level", "error"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "- **Input:** script [MoveLeft Rotate Descend]")
}

func TestSoakCommandRejectsBadScript(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"soak", "--script", "left,hold"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "hold"`)
}
