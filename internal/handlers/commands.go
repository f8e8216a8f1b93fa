package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/session"
)

// Maps known commands to the move they make. "g" makes none: it only asks
// for the current state.
var commandMoves = map[string]session.MoveKind{
	"o": session.Reveal,
	"f": session.Flag,
	"c": session.Chord,
	"r": session.Forfeit,
	"n": session.Reset,
}

type command struct {
	get  bool
	move session.Move
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func parseCommand(c string) (cmd command, err error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return cmd, errors.New("empty command")
	}
	if parts[0] == "g" {
		if len(parts) != 1 {
			return cmd, errors.New("invalid number of arguments")
		}
		cmd.get = true
		return
	}
	kind, ok := commandMoves[parts[0]]
	if !ok {
		return cmd, errors.New("unknown command")
	}
	nargs := 0
	if kind.HasPoint() {
		nargs = 2
	}
	if nargs != len(parts)-1 {
		return cmd, errors.New("invalid number of arguments")
	}
	cmd.move.Kind = kind
	if kind.HasPoint() {
		cmd.move.Row, cmd.move.Col, err = parseRowCol(parts[1:])
	}
	return
}

// splitCommands yields the non-blank lines of a message.
func splitCommands(text string) []string {
	var commands []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			commands = append(commands, line)
		}
	}
	return commands
}
