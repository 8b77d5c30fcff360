package game_test

import (
	"testing"

	"github.com/plus3/blockfall/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newO(rows, cols int) game.Session {
	return game.NewSession(rows, cols, game.WithSource(game.NewSequence(game.KindO)))
}

func TestNewSession(t *testing.T) {
	s := newO(20, 10)

	assert.Equal(t, game.Active, s.State())
	assert.False(t, s.GameOver())
	assert.Equal(t, game.Position{X: 4, Y: 0}, s.Position())
	assert.Equal(t, game.Position{X: 4, Y: 0}, s.Spawn())
	assert.Equal(t, game.KindO, s.Shape().Kind())
	assert.Equal(t, 0, s.Grid().Occupied())
	assert.Equal(t, 4, s.Snapshot().Occupied())
	assert.NotEqual(t, newO(20, 10).ID(), s.ID())

	t.Run("invalid dimensions panic", func(t *testing.T) {
		assert.Panics(t, func() { game.NewSession(0, 10) })
	})

	t.Run("piece that cannot spawn starts over", func(t *testing.T) {
		s := game.NewSession(1, 1, game.WithSource(game.NewSequence(game.KindI)))
		assert.True(t, s.GameOver())
		assert.Equal(t, 0, s.Snapshot().Occupied())
	})

	t.Run("custom spawn", func(t *testing.T) {
		s := game.NewSession(20, 10, game.WithSeed(1), game.WithSpawn(game.Position{X: 0, Y: 2}))
		assert.Equal(t, game.Position{X: 0, Y: 2}, s.Position())
	})
}

func TestODropsToTheFloor(t *testing.T) {
	s := newO(20, 10)

	var outcome game.Outcome
	for i := range 19 {
		s, outcome = s.Step(game.Descend)
		if i < 18 {
			require.False(t, outcome.Landed, "descend %d", i+1)
			require.Equal(t, i+1, s.Position().Y)
		}
	}

	require.True(t, outcome.Landed)
	assert.Equal(t, 0, outcome.LinesCleared)
	assert.Equal(t, 4, s.Grid().Occupied())
	for _, c := range []game.Position{{X: 4, Y: 18}, {X: 5, Y: 18}, {X: 4, Y: 19}, {X: 5, Y: 19}} {
		assert.NotEqual(t, game.Empty, s.Grid().At(c.X, c.Y), "cell %v", c)
	}
	assert.Equal(t, s.Spawn(), s.Position(), "next piece spawns at the top")
}

func TestMoveLeftAtWall(t *testing.T) {
	s := newO(20, 10)
	for range 4 {
		s = s.Apply(game.MoveLeft)
	}
	require.Equal(t, 0, s.Position().X)

	next, outcome := s.Step(game.MoveLeft)
	assert.False(t, outcome.Accepted)
	assert.Equal(t, s.Position(), next.Position())
}

func TestMoveRightAtWall(t *testing.T) {
	s := newO(20, 10)
	for range 10 {
		s = s.Apply(game.MoveRight)
	}
	assert.Equal(t, 8, s.Position().X)
}

func TestRotateNearWallIsRejected(t *testing.T) {
	s := game.NewSession(20, 10, game.WithSource(game.NewSequence(game.KindI)))
	s = s.Apply(game.Rotate)
	for range 10 {
		s = s.Apply(game.MoveRight)
	}
	require.Equal(t, 9, s.Position().X)

	next, outcome := s.Step(game.Rotate)
	assert.False(t, outcome.Accepted, "no wall kick")
	assert.True(t, s.Shape().Equal(next.Shape()))
	assert.Equal(t, s.Position(), next.Position())
}

func TestApplyDoesNotModifyReceiver(t *testing.T) {
	s := newO(20, 10)
	for range 18 {
		s = s.Apply(game.Descend)
	}
	before := s.Grid().String()

	landed := s.Apply(game.Descend)
	assert.Equal(t, 4, landed.Grid().Occupied())
	assert.Equal(t, before, s.Grid().String())
	assert.Equal(t, 18, s.Position().Y)
}

func TestStackingToTheTopEndsTheGame(t *testing.T) {
	s := newO(20, 10)

	landings := 0
	for steps := 0; !s.GameOver(); steps++ {
		require.Less(t, steps, 1000)
		var outcome game.Outcome
		s, outcome = s.Step(game.Descend)
		if outcome.Landed {
			landings++
		}
	}

	assert.Equal(t, 10, landings)
	assert.Equal(t, 40, s.Grid().Occupied())
	assert.True(t, s.Grid().Equal(s.Snapshot()), "a finished game shows only landed cells")

	frozen := s.Apply(game.Descend).Apply(game.MoveLeft).Apply(game.Rotate)
	assert.Equal(t, s, frozen)
}

func TestParseCommand(t *testing.T) {
	for _, name := range []string{"MoveLeft", "MoveRight", "Rotate", "Descend"} {
		cmd, err := game.ParseCommand(name)
		require.NoError(t, err)
		assert.Equal(t, name, cmd.String())
	}

	_, err := game.ParseCommand("hold")
	assert.Error(t, err)
}

func TestLandingAdvancesSharedSource(t *testing.T) {
	start := game.NewSession(2, 4,
		game.WithSource(game.NewSequence(game.KindI, game.KindT, game.KindO)),
		game.WithSpawn(game.Position{X: 0, Y: 0}))
	resting := start.Apply(game.Descend)
	require.Equal(t, game.Position{X: 0, Y: 1}, resting.Position())

	first, out := resting.Step(game.Descend)
	require.True(t, out.Landed)
	assert.Equal(t, 1, out.LinesCleared)
	assert.Equal(t, game.KindT, first.Shape().Kind())

	second, out := resting.Step(game.Descend)
	require.True(t, out.Landed)
	assert.Equal(t, game.KindO, second.Shape().Kind(), "the sequence is shared, not copied")
	assert.True(t, first.Grid().Equal(second.Grid()))
}
