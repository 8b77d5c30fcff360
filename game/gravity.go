package game

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultTickInterval is the reference automatic descent interval.
const DefaultTickInterval = 300 * time.Millisecond

// GravitySystem is the tick source: it pushes a Descend command every Interval of frame time.
// Once the session is over it stops scheduling descents, and its accumulated time is discarded
// whenever the scheduler switches to a different session.
type GravitySystem struct {
	Interval time.Duration

	elapsed time.Duration
	session uuid.UUID
}

func (g *GravitySystem) Execute(frame *Frame) {
	if id := frame.Session.ID(); id != g.session {
		g.session = id
		g.elapsed = 0
	}
	if frame.Session.GameOver() {
		g.elapsed = 0
		return
	}

	interval := g.Interval
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	g.elapsed += time.Duration(frame.DeltaTime * float64(time.Second))
	for g.elapsed >= interval {
		g.elapsed -= interval
		frame.Commands.Push(Descend)
	}
}

// LogObserver logs landings, line clears and the end of a game.
type LogObserver struct {
	Logger *slog.Logger
}

func (l LogObserver) Observe(session Session, outcome Outcome) {
	if !outcome.Landed {
		l.Logger.Debug("command applied",
			"session", session.ID(),
			"command", outcome.Command,
			"accepted", outcome.Accepted,
			"x", session.Position().X,
			"y", session.Position().Y)
		return
	}

	if outcome.LinesCleared > 0 {
		l.Logger.Info("lines cleared", "session", session.ID(), "lines", outcome.LinesCleared)
	}
	if outcome.GameOver {
		l.Logger.Info("game over",
			"session", session.ID(),
			"occupied", session.Grid().Occupied())
		return
	}
	l.Logger.Debug("piece landed", "session", session.ID(), "next", outcome.Spawned)
}
