package session

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type MoveKind uint8

const (
	Reveal MoveKind = iota + 1
	Flag
	Chord
	Forfeit
	Reset
	LAST_MOVE
)

func (k MoveKind) String() string {
	switch k {
	case Reveal:
		return "Reveal"
	case Flag:
		return "Flag"
	case Chord:
		return "Chord"
	case Forfeit:
		return "Forfeit"
	case Reset:
		return "Reset"
	default:
		return fmt.Sprintf("MoveKind(%d)", uint8(k))
	}
}

// HasPoint reports whether the move targets a cell.
func (k MoveKind) HasPoint() bool {
	return k == Reveal || k == Flag || k == Chord
}

var ErrBadMove error

func init() {
	var allowedMoves []string
	for i := 1; i < int(LAST_MOVE); i++ {
		allowedMoves = append(allowedMoves, "'"+MoveKind(i).String()+"'")
	}
	ErrBadMove = fmt.Errorf(
		"move must be one of %s",
		strings.ToLower(strings.Join(allowedMoves, ", ")),
	)
}

func ParseMoveKind(s string) (kind MoveKind, err error) {
	switch strings.ToLower(s) {
	case "reveal", "open":
		kind = Reveal
	case "flag":
		kind = Flag
	case "chord":
		kind = Chord
	case "forfeit":
		kind = Forfeit
	case "reset":
		kind = Reset
	default:
		err = ErrBadMove
	}
	return
}

type Move struct {
	Kind     MoveKind
	Row, Col int
}

func (m Move) String() string {
	if m.Kind.HasPoint() {
		return fmt.Sprintf("%s %d:%d", m.Kind, m.Row, m.Col)
	}
	return m.Kind.String()
}

func (m Move) apply(g *mines.Game, r *rand.Rand) (mines.Snapshot, error) {
	switch m.Kind {
	case Reveal:
		return g.Reveal(m.Row, m.Col, r)
	case Flag:
		return g.ToggleFlag(m.Row, m.Col)
	case Chord:
		return g.Chord(m.Row, m.Col)
	case Forfeit:
		return g.Forfeit(), nil
	case Reset:
		return g.Reset(), nil
	default:
		return g.Snapshot(), ErrBadMove
	}
}
