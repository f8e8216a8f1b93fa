package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startedGame wraps a fixed layout in a game that has already placed its
// mines.
func startedGame(b Board) *Game {
	return &Game{
		GameParams: GameParams{Rows: b.Rows, Cols: b.Cols, MineCount: b.MineCount},
		Board:      b,
		Started:    true,
		FlagsLeft:  b.MineCount,
		Exploded:   -1,
	}
}

func tenByTen() Board {
	return layout(
		"..........",
		"..........",
		"..........",
		"...*......",
		"..........",
		"......*...",
		"..........",
		"*.........",
		"*****.....",
		"*****...**",
	)
}

func assertAllRevealed(t *testing.T, b Board) {
	t.Helper()
	for i, tile := range b.Tiles {
		assert.True(t, tile.IsRevealed, "tile %d hidden", i)
		assert.False(t, tile.IsFlagged, "tile %d flagged", i)
	}
}

func TestNewGame(t *testing.T) {
	g, err := NewGame(DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, InProgress, g.Status)
	assert.False(t, g.Started)
	assert.Equal(t, 15, g.FlagsLeft)
	assert.Equal(t, -1, g.Exploded)
	assert.Zero(t, g.Board.CountMines())
	assert.Len(t, g.Board.Tiles, 100)

	_, err = NewGame(GameParams{Rows: 3, Cols: 3, MineCount: 9})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestFirstRevealIsSafe(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	params := GameParams{Rows: 4, Cols: 4, MineCount: 15}
	for row := range 4 {
		for col := range 4 {
			g, err := NewGame(params)
			require.NoError(t, err)

			snap, err := g.Reveal(row, col, r)
			require.NoError(t, err)
			assert.True(t, snap.Started)
			assert.Equal(t, 15, g.Board.CountMines())
			// one safe cell on the board: opening it wins
			assert.Equal(t, Won, snap.Status)
			assert.True(t, snap.Changed)
			assert.Equal(t, -1, snap.Exploded)
		}
	}
}

func TestRevealMineLoses(t *testing.T) {
	g := startedGame(tenByTen())
	snap, err := g.Reveal(3, 3, nil)
	require.NoError(t, err)

	assert.Equal(t, Lost, snap.Status)
	assert.True(t, snap.Changed)
	assert.Equal(t, 33, snap.Exploded)
	assert.Equal(t, ExplodedMine, snap.PlayerGrid()[33])
	assertAllRevealed(t, g.Board)

	// terminal: every action but reset is ignored
	before := *g
	snap, err = g.Reveal(0, 0, nil)
	require.NoError(t, err)
	assert.False(t, snap.Changed)
	_, err = g.ToggleFlag(0, 0)
	require.NoError(t, err)
	_, err = g.Chord(0, 0)
	require.NoError(t, err)
	g.Forfeit()
	assert.Equal(t, before, *g)
}

func TestWinIgnoresFlags(t *testing.T) {
	g := startedGame(tenByTen())
	for i, tile := range g.Board.Tiles {
		if tile.IsMine {
			_, err := g.ToggleFlag(g.Board.point(i))
			require.NoError(t, err)
		}
	}
	assert.Zero(t, g.FlagsLeft)

	changed := 0
	for i, tile := range g.Board.Tiles {
		if !tile.IsMine {
			snap, err := g.Reveal(i/10, i%10, nil)
			require.NoError(t, err)
			if snap.Changed {
				changed++
				assert.Equal(t, Won, snap.Status)
			}
		}
	}
	assert.Equal(t, 1, changed)
	assert.Equal(t, Won, g.Status)
	assertAllRevealed(t, g.Board)
}

func TestWinWithoutFlags(t *testing.T) {
	g := startedGame(tenByTen())
	for i, tile := range g.Board.Tiles {
		if !tile.IsMine {
			_, err := g.Reveal(i/10, i%10, nil)
			require.NoError(t, err)
		}
	}
	assert.Equal(t, Won, g.Status)
	assert.Equal(t, 15, g.FlagsLeft)
}

func TestToggleFlagTwice(t *testing.T) {
	g, err := NewGame(DefaultParams())
	require.NoError(t, err)
	before := *g

	snap, err := g.ToggleFlag(4, 7)
	require.NoError(t, err)
	assert.Equal(t, 14, snap.FlagsLeft)
	assert.True(t, snap.Board.Tile(4, 7).IsFlagged)

	snap, err = g.ToggleFlag(4, 7)
	require.NoError(t, err)
	assert.Equal(t, 15, snap.FlagsLeft)
	assert.False(t, snap.Board.Tile(4, 7).IsFlagged)
	assert.Equal(t, before, *g)
}

func TestFlagsLeftGoesNegative(t *testing.T) {
	g, err := NewGame(GameParams{Rows: 3, Cols: 3, MineCount: 1})
	require.NoError(t, err)
	for col := range 3 {
		_, err := g.ToggleFlag(0, col)
		require.NoError(t, err)
	}
	assert.Equal(t, -2, g.FlagsLeft)
}

func TestFlagRevealedTile(t *testing.T) {
	g := startedGame(tenByTen())
	_, err := g.Reveal(0, 9, nil)
	require.NoError(t, err)
	snap, err := g.ToggleFlag(0, 9)
	require.NoError(t, err)
	assert.False(t, snap.Board.Tile(0, 9).IsFlagged)
	assert.Equal(t, 15, snap.FlagsLeft)
}

func TestRevealFlaggedIsNoop(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	g, err := NewGame(DefaultParams())
	require.NoError(t, err)
	_, err = g.ToggleFlag(2, 2)
	require.NoError(t, err)

	snap, err := g.Reveal(2, 2, r)
	require.NoError(t, err)
	assert.False(t, snap.Started, "a blocked click must not lay mines")
	assert.Zero(t, snap.Board.CountRevealed())

	// the flag survives mine placement
	_, err = g.Reveal(7, 7, r)
	require.NoError(t, err)
	assert.True(t, g.Board.Tile(2, 2).IsFlagged || g.Status.Terminal())
}

func TestResetAfterLoss(t *testing.T) {
	g := startedGame(tenByTen())
	_, err := g.Reveal(9, 0, nil)
	require.NoError(t, err)
	require.Equal(t, Lost, g.Status)

	snap := g.Reset()
	assert.Equal(t, InProgress, snap.Status)
	assert.True(t, snap.Changed)
	assert.False(t, snap.Started)
	assert.Equal(t, 15, snap.FlagsLeft)
	assert.Equal(t, -1, snap.Exploded)
	assert.Zero(t, snap.Board.CountMines())
	assert.Zero(t, snap.Board.CountRevealed())
	assert.Zero(t, snap.Board.CountFlags())
}

func TestOutOfBounds(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	g, err := NewGame(DefaultParams())
	require.NoError(t, err)

	_, err = g.Reveal(10, 0, r)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = g.ToggleFlag(0, -1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = g.Chord(-1, 3)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.False(t, g.Started)
}

func TestCorruptBoardRecovered(t *testing.T) {
	g := startedGame(tenByTen())
	g.Board.Tiles = g.Board.Tiles[:50]
	_, err := g.Reveal(9, 9, nil)
	var ae AssertionError
	assert.ErrorAs(t, err, &ae)
}

func TestChord(t *testing.T) {
	g := startedGame(layout(
		"*..",
		"...",
		"...",
	))
	_, err := g.Reveal(1, 1, nil)
	require.NoError(t, err)
	_, err = g.ToggleFlag(0, 0)
	require.NoError(t, err)

	snap, err := g.Chord(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Won, snap.Status)
}

func TestChordWrongFlagLoses(t *testing.T) {
	g := startedGame(layout(
		"*..",
		"...",
		"...",
	))
	_, err := g.Reveal(1, 1, nil)
	require.NoError(t, err)
	_, err = g.ToggleFlag(1, 0)
	require.NoError(t, err)

	snap, err := g.Chord(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Lost, snap.Status)
	assert.Equal(t, 0, snap.Exploded)
	assertAllRevealed(t, snap.Board)
}

func TestForfeit(t *testing.T) {
	g := startedGame(tenByTen())
	snap := g.Forfeit()
	assert.Equal(t, Lost, snap.Status)
	assert.True(t, snap.Changed)
	assert.Equal(t, -1, snap.Exploded)
	assertAllRevealed(t, snap.Board)
}

func TestSnapshotsAreIndependent(t *testing.T) {
	g := startedGame(tenByTen())
	first, err := g.Reveal(0, 9, nil)
	require.NoError(t, err)
	revealed := first.Board.CountRevealed()

	_, err = g.Reveal(6, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, revealed, first.Board.CountRevealed())
}

func TestGameBytes(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 5))
	g, err := NewGame(GameParams{Rows: 8, Cols: 8, MineCount: 10, SafeArea: true})
	require.NoError(t, err)
	_, err = g.Reveal(3, 3, r)
	require.NoError(t, err)
	_, err = g.ToggleFlag(0, 0)
	require.NoError(t, err)

	buf, err := g.Bytes()
	require.NoError(t, err)
	decoded, err := DecodeGame(buf)
	require.NoError(t, err)
	assert.Equal(t, g, decoded)

	_, err = DecodeGame([]byte("garbage"))
	assert.Error(t, err)
}

func TestStatusText(t *testing.T) {
	for _, s := range []Status{InProgress, Won, Lost} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var back Status
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}
	var s Status
	assert.Error(t, s.UnmarshalText([]byte("draw")))
	assert.True(t, Won.Terminal())
	assert.True(t, Lost.Terminal())
	assert.False(t, InProgress.Terminal())
}
