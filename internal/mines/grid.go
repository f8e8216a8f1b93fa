package mines

import (
	"strconv"
	"strings"
)

// CellState is what a player is allowed to see of one tile.
type CellState int8

const (
	Unknown      CellState = -2
	Flagged      CellState = -1
	ExplodedMine CellState = 65
	RevealedMine CellState = 67
	/*
	 * Each item in a [Grid] is one of the following values:
	 *
	 * 	- 0 to 8 mean the square is open and has a surrounding mine
	 * 	  count.
	 *
	 * 	- -1 means the square is flagged.
	 *
	 * 	- -2 means the square is hidden.
	 *
	 * 	- 65 means the square is the mine the player opened.
	 *
	 * 	- 67 means the square is a mine shown once the game is over.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return " "
	case s == Flagged:
		return "F"
	case s == ExplodedMine:
		return "X"
	case s == RevealedMine:
		return "*"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellState

// Render lays the grid out in rows of cols cells, one character per cell.
func (g Grid) Render(cols int) string {
	var sb strings.Builder
	for i, s := range g {
		sb.WriteString(s.String())
		if (i+1)%cols == 0 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// PlayerGrid masks the board: hidden tiles give nothing away.
func (b Board) PlayerGrid() Grid {
	grid := make(Grid, len(b.Tiles))
	for i, t := range b.Tiles {
		switch {
		case t.IsFlagged:
			grid[i] = Flagged
		case !t.IsRevealed:
			grid[i] = Unknown
		case t.IsMine:
			grid[i] = RevealedMine
		default:
			grid[i] = CellState(t.AdjacentMines)
		}
	}
	return grid
}

// String draws the mine layout, for logs and tests: '*' for a mine, '.'
// for an empty tile and the count otherwise. Reveal and flag state is not
// shown.
func (b Board) String() string {
	var sb strings.Builder
	for row := range b.Rows {
		for col := range b.Cols {
			t := b.Tiles[row*b.Cols+col]
			switch {
			case t.IsMine:
				sb.WriteByte('*')
			case t.AdjacentMines == 0:
				sb.WriteByte('.')
			default:
				sb.WriteString(strconv.Itoa(t.AdjacentMines))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
