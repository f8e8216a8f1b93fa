package mines

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

type Status int8

const (
	InProgress Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", int8(s))
	}
}

// Terminal reports whether only a reset is accepted any more.
func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "in_progress":
		*s = InProgress
	case "won":
		*s = Won
	case "lost":
		*s = Lost
	default:
		return fmt.Errorf("unknown game status %q", text)
	}
	return nil
}

// Game is the controller around a [Board]: it owns the current board, the
// status and the flag counter, and runs player actions against them.
type Game struct {
	GameParams
	Board   Board
	Status  Status
	Started bool /* mines have been placed */
	// FlagsLeft mirrors "mines left" and goes negative when the player
	// plants more flags than there are mines.
	FlagsLeft int
	// Exploded is the index of the opened mine, -1 if none.
	Exploded int
}

// Snapshot is the state handed to the presentation layer after an action.
type Snapshot struct {
	Board     Board
	Status    Status
	FlagsLeft int
	Started   bool
	Exploded  int
	// Changed is set when the action moved the game to a new status.
	Changed bool
}

// PlayerGrid is [Board.PlayerGrid] with the fatal mine marked.
func (s Snapshot) PlayerGrid() Grid {
	grid := s.Board.PlayerGrid()
	if 0 <= s.Exploded && s.Exploded < len(grid) {
		grid[s.Exploded] = ExplodedMine
	}
	return grid
}

func NewGame(params GameParams) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	g := &Game{GameParams: params}
	g.Reset()
	return g, nil
}

func DecodeGame(buf []byte) (*Game, error) {
	var game Game
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&game)
	if err != nil {
		return nil, err
	}
	b := game.Board
	if b.Rows != game.Rows || b.Cols != game.Cols || len(b.Tiles) != b.Rows*b.Cols {
		return nil, fmt.Errorf("%w: %dx%d board with %d tiles",
			ErrCorruptState, b.Rows, b.Cols, len(b.Tiles))
	}
	return &game, nil
}

func (g Game) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(g)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Game) Snapshot() Snapshot {
	return g.snapshot(g.Status)
}

func (g *Game) snapshot(prev Status) Snapshot {
	return Snapshot{
		Board:     g.Board,
		Status:    g.Status,
		FlagsLeft: g.FlagsLeft,
		Started:   g.Started,
		Exploded:  g.Exploded,
		Changed:   g.Status != prev,
	}
}

func (g *Game) checkBounds(row, col int) error {
	if !g.Board.InBounds(row, col) {
		return fmt.Errorf("%w: %d:%d on a %dx%d board",
			ErrOutOfBounds, row, col, g.Board.Rows, g.Board.Cols)
	}
	return nil
}

func (g *Game) fields() logrus.Fields {
	return logrus.Fields{"params": g.Seed(), "status": g.Status}
}

// Reveal opens (row, col). The first reveal of a game lays the mines,
// never under the clicked cell. Opening a mine loses the game, opening the
// last safe tile wins it; either way the whole board is then shown.
// Terminal games, flagged tiles and open tiles make it a no-op.
func (g *Game) Reveal(row, col int, r *rand.Rand) (snap Snapshot, err error) {
	defer recoverAssertion(&err)

	if err := g.checkBounds(row, col); err != nil {
		return g.Snapshot(), err
	}
	prev := g.Status
	if g.Status.Terminal() {
		return g.snapshot(prev), nil
	}
	if t := g.Board.Tile(row, col); t.IsRevealed || t.IsFlagged {
		return g.snapshot(prev), nil
	}

	if !g.Started {
		var board Board
		if g.SafeArea {
			board = g.Board.PlaceMinesAround(g.MineCount, row, col, r)
		} else {
			board = g.Board.PlaceMines(g.MineCount, row, col, r)
		}
		g.Board = board.CalculateAdjacentMines()
		g.Started = true
		Log.WithFields(g.fields()).Debugf("mines placed\n%s", g.Board)
	}

	revealed := g.Board.RevealTile(row, col)
	if revealed.Tile(row, col).IsMine {
		g.lose(revealed, row*g.Board.Cols+col)
		return g.snapshot(prev), nil
	}

	g.Board = revealed
	g.checkWin()
	return g.snapshot(prev), nil
}

// ToggleFlag flips the flag on a hidden tile and adjusts FlagsLeft.
func (g *Game) ToggleFlag(row, col int) (snap Snapshot, err error) {
	defer recoverAssertion(&err)

	if err := g.checkBounds(row, col); err != nil {
		return g.Snapshot(), err
	}
	if g.Status.Terminal() {
		return g.Snapshot(), nil
	}
	t := g.Board.Tile(row, col)
	if t.IsRevealed {
		return g.Snapshot(), nil
	}
	g.Board = g.Board.ToggleFlag(row, col)
	if t.IsFlagged {
		g.FlagsLeft++
	} else {
		g.FlagsLeft--
	}
	return g.Snapshot(), nil
}

// Chord opens the neighbours of a satisfied number, see [Board.ChordTile].
func (g *Game) Chord(row, col int) (snap Snapshot, err error) {
	defer recoverAssertion(&err)

	if err := g.checkBounds(row, col); err != nil {
		return g.Snapshot(), err
	}
	prev := g.Status
	if g.Status.Terminal() || !g.Started {
		return g.snapshot(prev), nil
	}

	chorded := g.Board.ChordTile(row, col)
	for j := range chorded.neighbours(row*chorded.Cols + col) {
		if t := chorded.Tiles[j]; t.IsMine && t.IsRevealed {
			g.lose(chorded, j)
			return g.snapshot(prev), nil
		}
	}

	g.Board = chorded
	g.checkWin()
	return g.snapshot(prev), nil
}

// Forfeit gives up a running game.
func (g *Game) Forfeit() Snapshot {
	prev := g.Status
	if !g.Status.Terminal() {
		g.Status = Lost
		g.Board = g.Board.RevealBoard()
		Log.WithFields(g.fields()).Debug("game forfeited")
	}
	return g.snapshot(prev)
}

// Reset starts over on a fresh, empty board with the same params.
func (g *Game) Reset() Snapshot {
	prev := g.Status
	g.Board = NewEmptyBoard(g.Rows, g.Cols)
	g.Status = InProgress
	g.Started = false
	g.FlagsLeft = g.MineCount
	g.Exploded = -1
	return g.snapshot(prev)
}

func (g *Game) lose(board Board, exploded int) {
	g.Status = Lost
	g.Exploded = exploded
	g.Board = board.RevealBoard()
	row, col := board.point(exploded)
	Log.WithFields(g.fields()).WithFields(logrus.Fields{
		"row": row, "col": col,
	}).Debugf("mine opened\n%s", g.Snapshot().PlayerGrid().Render(g.Cols))
}

func (g *Game) checkWin() {
	if g.Board.CheckWinCondition() {
		g.Status = Won
		g.Board = g.Board.RevealBoard()
		Log.WithFields(g.fields()).Debug("game won")
	}
}
