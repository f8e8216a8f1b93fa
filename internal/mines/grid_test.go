package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerGridMasksMines(t *testing.T) {
	b := layout(
		"*..",
		"...",
		"..*",
	).ToggleFlag(2, 2).RevealTile(0, 1)

	grid := b.PlayerGrid()
	assert.Equal(t, Grid{
		Unknown, 1, Unknown,
		Unknown, Unknown, Unknown,
		Unknown, Unknown, Flagged,
	}, grid)
	assert.Equal(t, "  1  \n     \n    F\n", grid.Render(3))
}

func TestPlayerGridAfterLoss(t *testing.T) {
	g := startedGame(layout(
		"*.",
		"..",
	))
	snap, err := g.Reveal(0, 0, nil)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, Grid{ExplodedMine, 1, 1, 1}, snap.PlayerGrid())
	assert.Equal(t, Grid{RevealedMine, 1, 1, 1}, snap.Board.PlayerGrid())
}

func TestCellStateString(t *testing.T) {
	assert.Equal(t, " ", Unknown.String())
	assert.Equal(t, "F", Flagged.String())
	assert.Equal(t, "X", ExplodedMine.String())
	assert.Equal(t, "*", RevealedMine.String())
	assert.Equal(t, "8", CellState(8).String())
	assert.Equal(t, "!", CellState(9).String())
}
