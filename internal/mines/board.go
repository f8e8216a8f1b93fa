package mines

import (
	"iter"
	"math/rand/v2"
	"slices"
)

type Tile struct {
	IsMine     bool
	IsRevealed bool
	IsFlagged  bool
	// AdjacentMines is the number of mines among the up to 8 neighbours.
	// Always 0 for mines.
	AdjacentMines int
}

// Board is a value: every operation returns a new Board and leaves the
// receiver untouched, so a holder can swap references and diff freely.
// Tiles are stored row-major.
type Board struct {
	Rows, Cols, MineCount int
	Tiles                 []Tile
}

// panics [AssertionError]
func NewEmptyBoard(rows, cols int) Board {
	assertf(rows > 0 && cols > 0, "board must be at least 1x1, got %dx%d", rows, cols)
	return Board{
		Rows:  rows,
		Cols:  cols,
		Tiles: make([]Tile, rows*cols),
	}
}

func (b Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.Rows && 0 <= col && col < b.Cols
}

// panics [AssertionError]
func (b Board) index(row, col int) int {
	assertf(b.InBounds(row, col),
		"cell %d:%d outside %dx%d board", row, col, b.Rows, b.Cols)
	assertf(len(b.Tiles) == b.Rows*b.Cols,
		"%dx%d board holds %d tiles", b.Rows, b.Cols, len(b.Tiles))
	return row*b.Cols + col
}

func (b Board) point(i int) (row, col int) {
	return i / b.Cols, i % b.Cols
}

// panics [AssertionError]
func (b Board) Tile(row, col int) Tile {
	return b.Tiles[b.index(row, col)]
}

func (b Board) clone() Board {
	b.Tiles = slices.Clone(b.Tiles)
	return b
}

// neighbours yields the indices of the in-bounds Moore neighbours of i.
func (b Board) neighbours(i int) iter.Seq[int] {
	row, col := b.point(i)
	return func(yield func(int) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				r, c := row+dr, col+dc
				if (dr != 0 || dc != 0) && b.InBounds(r, c) {
					if !yield(r*b.Cols + c) {
						return
					}
				}
			}
		}
	}
}

// PlaceMines scatters mineCount mines uniformly over every cell except
// (excludeRow, excludeCol). Mines already on the board are discarded.
//
// panics [AssertionError]
func (b Board) PlaceMines(mineCount, excludeRow, excludeCol int, r *rand.Rand) Board {
	return b.placeMines(mineCount, excludeRow, excludeCol, false, r)
}

// PlaceMinesAround is [Board.PlaceMines] with the whole 3x3 neighbourhood
// of the excluded cell kept clear. Boards too crowded for that fall back to
// excluding the single cell.
//
// panics [AssertionError]
func (b Board) PlaceMinesAround(mineCount, excludeRow, excludeCol int, r *rand.Rand) Board {
	return b.placeMines(mineCount, excludeRow, excludeCol, true, r)
}

func (b Board) placeMines(mineCount, sr, sc int, around bool, r *rand.Rand) Board {
	start := b.index(sr, sc)
	assertf(0 <= mineCount && mineCount < len(b.Tiles),
		"cannot place %d mines on %d cells with one kept free", mineCount, len(b.Tiles))

	candidates := b.candidates(start, around)
	if len(candidates) < mineCount {
		Log.WithField("mines", mineCount).
			Debug("no room for a safe area, excluding the first cell only")
		candidates = b.candidates(start, false)
	}

	nb := b.clone()
	for i := range nb.Tiles {
		nb.Tiles[i].IsMine = false
		nb.Tiles[i].AdjacentMines = 0
	}

	/*
	 * Pick n off the list at random, swapping each pick out of the
	 * live prefix.
	 */
	k := len(candidates)
	for range mineCount {
		i := r.IntN(k)
		nb.Tiles[candidates[i]].IsMine = true
		k--
		candidates[i] = candidates[k]
	}
	nb.MineCount = mineCount
	return nb
}

func (b Board) candidates(start int, around bool) []int {
	sr, sc := b.point(start)
	candidates := make([]int, 0, len(b.Tiles))
	for i := range b.Tiles {
		if i == start {
			continue
		}
		if around {
			r, c := b.point(i)
			if absDiff(sr, r) <= 1 && absDiff(sc, c) <= 1 {
				continue
			}
		}
		candidates = append(candidates, i)
	}
	return candidates
}

func (b Board) CalculateAdjacentMines() Board {
	nb := b.clone()
	for i, t := range b.Tiles {
		if t.IsMine {
			nb.Tiles[i].AdjacentMines = 0
			continue
		}
		n := 0
		for j := range b.neighbours(i) {
			if b.Tiles[j].IsMine {
				n++
			}
		}
		nb.Tiles[i].AdjacentMines = n
	}
	return nb
}

// ToggleFlag flips the flag on a hidden tile. Revealed tiles are left alone.
//
// panics [AssertionError]
func (b Board) ToggleFlag(row, col int) Board {
	i := b.index(row, col)
	if b.Tiles[i].IsRevealed {
		return b
	}
	nb := b.clone()
	nb.Tiles[i].IsFlagged = !nb.Tiles[i].IsFlagged
	return nb
}

// CheckWinCondition reports whether every safe tile is open. Flags play no
// part in it.
func (b Board) CheckWinCondition() bool {
	opened := 0
	for _, t := range b.Tiles {
		if t.IsRevealed && !t.IsMine {
			opened++
		}
	}
	return opened == len(b.Tiles)-b.MineCount
}

// RevealBoard opens every tile. Flags are dropped so that no tile is ever
// both flagged and revealed.
func (b Board) RevealBoard() Board {
	nb := b.clone()
	for i := range nb.Tiles {
		nb.Tiles[i].IsRevealed = true
		nb.Tiles[i].IsFlagged = false
	}
	return nb
}

func (b Board) CountMines() (n int) {
	for _, t := range b.Tiles {
		if t.IsMine {
			n++
		}
	}
	return
}

func (b Board) CountFlags() (n int) {
	for _, t := range b.Tiles {
		if t.IsFlagged {
			n++
		}
	}
	return
}

func (b Board) CountRevealed() (n int) {
	for _, t := range b.Tiles {
		if t.IsRevealed {
			n++
		}
	}
	return
}
