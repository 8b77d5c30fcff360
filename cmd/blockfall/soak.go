package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/game"
	"github.com/spf13/cobra"
)

type soakOptions struct {
	duration   time.Duration
	frameTime  time.Duration
	inputRate  float64
	script     []game.Command
	gcMetrics  bool
	newSession func() game.Session
	tick       time.Duration
	seed       uint64
}

func newSoakCmd(flags *globalFlags) *cobra.Command {
	opts := soakOptions{}
	var script []string

	cmd := &cobra.Command{
		Use:   "soak",
		Short: "Play random games headless and report frame timings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if opts.inputRate < 0 || opts.inputRate > 1 {
				return fmt.Errorf("input-rate must be within [0, 1], got %v", opts.inputRate)
			}
			if opts.frameTime <= 0 {
				return fmt.Errorf("frame-time must be positive, got %v", opts.frameTime)
			}

			opts.script, err = parseScript(script)
			if err != nil {
				return err
			}

			logger := cfg.Log.Logger(os.Stderr)
			opts.newSession = sessionFactory(cfg)
			opts.tick = cfg.Tick
			opts.seed = cfg.Seed

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.duration)
			defer cancel()

			logger.Info("running soak test", "duration", opts.duration, "frame_time", opts.frameTime)
			report := runSoak(ctx, opts, logger)
			logger.Info("soak test finished", "games", report.Games, "frames", report.TotalUpdates)

			fmt.Fprintln(cmd.OutOrStdout(), "--- Soak Test Report ---")
			if err := report.Generate(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("generate report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "--- End of Report ---")
			return nil
		},
	}

	f := cmd.Flags()
	f.DurationVar(&opts.duration, "duration", 10*time.Second, "the total wall-clock duration of the test")
	f.DurationVar(&opts.frameTime, "frame-time", time.Second/60, "simulated time advanced per frame")
	f.Float64Var(&opts.inputRate, "input-rate", 0.2, "probability of a random player command per frame")
	f.StringSliceVar(&script, "script", nil, "cycle through these commands (left, right, rotate, down) instead of random input")
	f.BoolVar(&opts.gcMetrics, "gc-pause-metrics", false, "include GC pause metrics in the report")
	return cmd
}

// RandomInputSystem stands in for a player, pushing a random command on a fraction of frames.
type RandomInputSystem struct {
	Rate float64
	rng  *rand.Rand
}

var randomCommands = []game.Command{game.MoveLeft, game.MoveRight, game.Rotate, game.Descend}

func (r *RandomInputSystem) Execute(frame *game.Frame) {
	if frame.Session.GameOver() || r.rng.Float64() >= r.Rate {
		return
	}
	frame.Commands.Push(randomCommands[r.rng.IntN(len(randomCommands))])
}

// ScriptedInputSystem replays a fixed command list in a loop, pushing the next command on a
// fraction of frames.
type ScriptedInputSystem struct {
	Rate   float64
	Script []game.Command
	rng    *rand.Rand
	next   int
}

func (s *ScriptedInputSystem) Execute(frame *game.Frame) {
	if frame.Session.GameOver() || s.rng.Float64() >= s.Rate {
		return
	}
	frame.Commands.Push(s.Script[s.next])
	s.next = (s.next + 1) % len(s.Script)
}

func parseScript(names []string) ([]game.Command, error) {
	script := make([]game.Command, 0, len(names))
	for _, name := range names {
		cmd, err := game.ParseCommand(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
		script = append(script, cmd)
	}
	return script, nil
}

// spawnCounter tallies spawned pieces by kind.
type spawnCounter struct {
	counts *intmap.Map[game.Kind, int64]
}

func newSpawnCounter() *spawnCounter {
	return &spawnCounter{counts: intmap.New[game.Kind, int64](len(game.Kinds()))}
}

func (c *spawnCounter) add(kind game.Kind) {
	n, _ := c.counts.Get(kind)
	c.counts.Put(kind, n+1)
}

func (c *spawnCounter) Observe(_ game.Session, outcome game.Outcome) {
	if outcome.Landed && !outcome.GameOver {
		c.add(outcome.Spawned)
	}
}

func (c *spawnCounter) histogram() []KindCount {
	out := make([]KindCount, 0, len(game.Kinds()))
	for _, kind := range game.Kinds() {
		n, _ := c.counts.Get(kind)
		out = append(out, KindCount{Kind: kind.String(), Count: n})
	}
	return out
}

// runSoak plays games back to back until ctx is done, starting a new game whenever one ends.
func runSoak(ctx context.Context, opts soakOptions, logger *slog.Logger) *Report {
	spawns := newSpawnCounter()
	session := opts.newSession()
	spawns.add(session.Shape().Kind())

	scheduler := game.NewScheduler(session)
	scheduler.Register(&game.GravitySystem{Interval: opts.tick})
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed+1))
	if len(opts.script) > 0 {
		scheduler.Register(&ScriptedInputSystem{Rate: opts.inputRate, Script: opts.script, rng: rng})
	} else {
		scheduler.Register(&RandomInputSystem{Rate: opts.inputRate, rng: rng})
	}
	scheduler.Observe(spawns)

	report := &Report{
		Duration:       opts.duration,
		FrameTime:      opts.frameTime,
		InputRate:      opts.inputRate,
		Script:         opts.script,
		GCPauseMetrics: opts.gcMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	dt := opts.frameTime.Seconds()
	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			scheduler.Once(dt)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++

			if current := scheduler.Session(); current.GameOver() {
				report.Games++
				logger.Debug("game finished", "session", current.ID(), "games", report.Games)
				next := opts.newSession()
				spawns.add(next.Shape().Kind())
				scheduler.Reset(next)
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	stats := scheduler.GetStats()
	report.Commands = stats.Commands
	report.Rejected = stats.Rejected
	report.Landings = stats.Landings
	report.LinesCleared = stats.LinesCleared
	report.Systems = stats.Systems
	report.Spawns = spawns.histogram()
	return report
}
