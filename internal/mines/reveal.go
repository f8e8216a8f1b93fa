package mines

import "github.com/sirupsen/logrus"

// RevealTile opens a tile. Hidden tiles with no adjacent mines spread the
// opening to their neighbours. Already open and flagged tiles are left
// alone, and opening a mine is allowed: spotting the loss is up to the
// caller.
//
// panics [AssertionError]
func (b Board) RevealTile(row, col int) Board {
	i := b.index(row, col)
	if b.Tiles[i].IsRevealed || b.Tiles[i].IsFlagged {
		return b
	}
	nb := b.clone()
	opened := nb.floodFill(i)
	Log.WithFields(logrus.Fields{
		"row": row, "col": col, "opened": opened,
	}).Trace("revealed")
	return nb
}

// floodFill opens start and the zero-adjacency region around it in place.
// Tiles are marked before they are pushed, so each one enters the stack at
// most once and the stack never outgrows the board.
func (b Board) floodFill(start int) (opened int) {
	b.Tiles[start].IsRevealed = true
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		opened++

		if t := b.Tiles[i]; t.IsMine || t.AdjacentMines > 0 {
			continue
		}
		for j := range b.neighbours(i) {
			n := &b.Tiles[j]
			if n.IsRevealed || n.IsFlagged {
				continue
			}
			n.IsRevealed = true
			stack = append(stack, j)
		}
	}
	return opened
}

// ChordTile opens every hidden, unflagged neighbour of an open numbered tile
// once the player has placed as many flags around it as it has adjacent
// mines. Anything else is a no-op. A wrongly placed flag means a mine gets
// opened; spotting that is again up to the caller.
//
// panics [AssertionError]
func (b Board) ChordTile(row, col int) Board {
	i := b.index(row, col)
	t := b.Tiles[i]
	if !t.IsRevealed || t.IsMine || t.AdjacentMines == 0 {
		return b
	}

	flagged := 0
	hidden := make([]int, 0, 8-t.AdjacentMines)
	for j := range b.neighbours(i) {
		switch n := b.Tiles[j]; {
		case n.IsFlagged:
			flagged++
		case !n.IsRevealed:
			hidden = append(hidden, j)
		}
	}
	if flagged != t.AdjacentMines || len(hidden) == 0 {
		return b
	}

	nb := b.clone()
	for _, j := range hidden {
		if !nb.Tiles[j].IsRevealed {
			nb.floodFill(j)
		}
	}
	return nb
}
