package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Command is an abstract player or timer action.
type Command uint8

const (
	MoveLeft Command = iota
	MoveRight
	Rotate
	Descend
)

// ParseCommand maps a command name such as "MoveLeft" or "descend" to its Command.
func ParseCommand(name string) (Command, error) {
	switch name {
	case "MoveLeft", "move-left", "left":
		return MoveLeft, nil
	case "MoveRight", "move-right", "right":
		return MoveRight, nil
	case "Rotate", "rotate":
		return Rotate, nil
	case "Descend", "descend", "down":
		return Descend, nil
	}
	return 0, fmt.Errorf("unknown command %q", name)
}

// State is the lifecycle state of a session.
type State uint8

const (
	Active State = iota
	GameOver
)

// Outcome describes what a single command did to a session.
type Outcome struct {
	Command Command
	// Accepted is false when the command was rejected as illegal or the session was already
	// over. A landing counts as accepted.
	Accepted     bool
	Landed       bool
	LinesCleared int
	// Spawned is the kind of the newly spawned piece; only meaningful when Landed is set and
	// GameOver is not.
	Spawned  Kind
	GameOver bool
}

// Session is the aggregate game state: landed cells, the falling piece, and whether the game is
// over. Sessions are values; Apply and Step return a new Session and never modify the receiver.
// Sessions derived from one another share the same ShapeSource.
type Session struct {
	id     uuid.UUID
	grid   Grid
	shape  Shape
	pos    Position
	spawn  Position
	state  State
	source ShapeSource
}

type sessionOptions struct {
	source ShapeSource
	spawn  *Position
}

// Option customizes NewSession.
type Option func(*sessionOptions)

// WithSource sets the piece source. The default draws uniformly at random.
func WithSource(source ShapeSource) Option {
	return func(o *sessionOptions) {
		o.source = source
	}
}

// WithSeed uses a seeded random source, making the piece stream reproducible.
func WithSeed(seed uint64) Option {
	return func(o *sessionOptions) {
		o.source = NewRandomSource(seed)
	}
}

// WithSpawn overrides the spawn position.
func WithSpawn(p Position) Option {
	return func(o *sessionOptions) {
		o.spawn = &p
	}
}

// SpawnPosition returns the default spawn position for a board cols wide: the top row,
// horizontally centered-ish (column 4 on a 10-wide board).
func SpawnPosition(cols int) Position {
	return Position{X: (cols - 1) / 2, Y: 0}
}

// NewSession starts a game on an empty rows×cols grid with the first piece at the spawn
// position. If that piece cannot be placed the session starts over. Non-positive dimensions
// panic.
func NewSession(rows, cols int, opts ...Option) Session {
	o := sessionOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.source == nil {
		o.source = NewRandomSource(rand.Uint64())
	}
	spawn := SpawnPosition(cols)
	if o.spawn != nil {
		spawn = *o.spawn
	}

	s := Session{
		id:     uuid.New(),
		grid:   EmptyGrid(rows, cols),
		spawn:  spawn,
		source: o.source,
	}

	s.shape = s.source.Next()
	s.pos = spawn
	if !IsValidPlacement(s.grid, s.shape, spawn) {
		s.state = GameOver
	}
	return s
}

// ID identifies the game for logs and views.
func (s Session) ID() uuid.UUID {
	return s.id
}

// Grid returns the landed cells. The falling piece is not included; see Snapshot.
func (s Session) Grid() Grid {
	return s.grid
}

// Shape returns the falling piece in its current orientation.
func (s Session) Shape() Shape {
	return s.shape
}

// Position returns the top-left corner of the falling piece.
func (s Session) Position() Position {
	return s.pos
}

// Spawn returns the position new pieces appear at.
func (s Session) Spawn() Position {
	return s.spawn
}

// State returns the lifecycle state.
func (s Session) State() State {
	return s.state
}

// GameOver reports whether the session has reached its terminal state.
func (s Session) GameOver() bool {
	return s.state == GameOver
}

// Snapshot returns the grid with the falling piece overlaid, ready to draw. Once the game is over
// the frozen grid is returned without the rejected piece.
func (s Session) Snapshot() Grid {
	if s.state == GameOver {
		return s.grid
	}
	return Project(s.grid, s.shape, s.pos)
}

// Apply runs cmd and returns the resulting session. See Step for how landings consume pieces.
func (s Session) Apply(cmd Command) Session {
	next, _ := s.Step(cmd)
	return next
}

// Step runs cmd and returns the resulting session together with a description of what happened.
// Illegal moves and commands sent to a finished session leave the state unchanged. A landing
// advances the shared ShapeSource, so landing twice from the same session draws two different
// pieces.
func (s Session) Step(cmd Command) (Session, Outcome) {
	out := Outcome{Command: cmd, GameOver: s.state == GameOver}
	if s.state == GameOver {
		return s, out
	}

	switch cmd {
	case MoveLeft:
		return s.shift(-1, out)
	case MoveRight:
		return s.shift(1, out)
	case Rotate:
		rotated := s.shape.Rotate()
		if IsValidPlacement(s.grid, rotated, s.pos) {
			s.shape = rotated
			out.Accepted = true
		}
		return s, out
	case Descend:
		return s.descend(out)
	}
	return s, out
}

func (s Session) shift(dx int, out Outcome) (Session, Outcome) {
	p := s.pos.Add(dx, 0)
	if IsValidPlacement(s.grid, s.shape, p) {
		s.pos = p
		out.Accepted = true
	}
	return s, out
}

func (s Session) descend(out Outcome) (Session, Outcome) {
	out.Accepted = true

	p := s.pos.Add(0, 1)
	if IsValidPlacement(s.grid, s.shape, p) {
		s.pos = p
		return s, out
	}

	out.Landed = true
	s.grid, out.LinesCleared = ClearLines(Merge(s.grid, s.shape, s.pos))

	s = s.respawn()
	if s.state == GameOver {
		out.GameOver = true
	} else {
		out.Spawned = s.shape.kind
	}
	return s, out
}

// respawn draws the next piece and places it at the spawn position. If it does not fit the
// session becomes over and keeps its previous piece and position.
func (s Session) respawn() Session {
	shape := s.source.Next()
	if !IsValidPlacement(s.grid, shape, s.spawn) {
		s.state = GameOver
		return s
	}
	s.shape = shape
	s.pos = s.spawn
	return s
}
