package game

import (
	"context"
	"reflect"
	"sync"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Commands        int64
	Rejected        int64
	Landings        int64
	LinesCleared    int64
	GamesOver       int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type counters struct {
	frames       int64
	commands     int64
	rejected     int64
	landings     int64
	linesCleared int64
	gamesOver    int64
}

// Scheduler owns the current session and runs systems against it frame by frame.
//
// Once and Run must be called from a single goroutine. Submit, Session and Reset are safe to call
// from any goroutine.
type Scheduler struct {
	mu       sync.Mutex
	session  Session
	pending  *Commands
	counters counters

	systems     []System
	systemStats []*systemStatsInternal
	observers   []Observer
}

// NewScheduler creates a scheduler driving session.
func NewScheduler(session Session) *Scheduler {
	return &Scheduler{
		session: session,
		pending: newCommands(),
		systems: make([]System, 0),
	}
}

// Register adds a system. Systems execute in registration order.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Observe adds an observer notified of every applied command.
func (s *Scheduler) Observe(observer Observer) {
	s.observers = append(s.observers, observer)
}

// Submit queues a command for the next frame. Submitted commands are applied before the ones
// pushed by systems during that frame.
func (s *Scheduler) Submit(cmd Command) {
	s.mu.Lock()
	s.pending.Push(cmd)
	s.mu.Unlock()
}

// Session returns the current session.
func (s *Scheduler) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Reset replaces the current session, typically with a fresh game. Commands still pending are
// applied to the new session.
func (s *Scheduler) Reset(session Session) {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
}

// Once executes all registered systems once with the given delta time, then applies the queued
// commands and runs deferred callbacks.
func (s *Scheduler) Once(dt float64) {
	s.mu.Lock()
	frame := &Frame{
		DeltaTime: dt,
		Commands:  s.pending,
		Session:   s.session,
		Scheduler: s,
	}
	s.pending = newCommands()
	s.mu.Unlock()

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.mu.Lock()
	session, results := frame.Commands.apply(s.session)
	s.session = session
	s.counters.frames++
	for _, r := range results {
		s.counters.commands++
		if !r.outcome.Accepted {
			s.counters.rejected++
		}
		if r.outcome.Landed {
			s.counters.landings++
			s.counters.linesCleared += int64(r.outcome.LinesCleared)
		}
		if r.outcome.GameOver && r.outcome.Landed {
			s.counters.gamesOver++
		}
	}
	s.mu.Unlock()

	for _, r := range results {
		for _, observer := range s.observers {
			observer.Observe(r.session, r.outcome)
		}
	}

	frame.Commands.runDeferred(session)
}

// Run executes frames at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution and applied commands.
func (s *Scheduler) GetStats() *SchedulerStats {
	s.mu.Lock()
	c := s.counters
	s.mu.Unlock()

	stats := &SchedulerStats{
		SystemCount:  len(s.systems),
		Frames:       c.frames,
		Commands:     c.commands,
		Rejected:     c.rejected,
		Landings:     c.landings,
		LinesCleared: c.linesCleared,
		GamesOver:    c.gamesOver,
		Systems:      make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
