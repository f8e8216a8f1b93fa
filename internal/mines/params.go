package mines

import (
	"fmt"
	"strings"
)

const (
	DefaultRows      = 10
	DefaultCols      = 10
	DefaultMineCount = 15
)

type GameParams struct {
	Rows, Cols, MineCount int
	// SafeArea keeps the whole neighbourhood of the first opened cell
	// free of mines whenever the board has room for it.
	SafeArea bool
}

func DefaultParams() GameParams {
	return GameParams{
		Rows:      DefaultRows,
		Cols:      DefaultCols,
		MineCount: DefaultMineCount,
	}
}

// Validate rejects boards on which mine placement could not terminate: at
// least one cell must stay free for the first click.
func (p GameParams) Validate() error {
	switch {
	case p.Rows < 1 || p.Cols < 1:
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d",
			ErrInvalidParams, p.Rows, p.Cols)
	case p.MineCount < 0:
		return fmt.Errorf("%w: negative mine count %d",
			ErrInvalidParams, p.MineCount)
	case p.MineCount >= p.Rows*p.Cols:
		return fmt.Errorf("%w: %d mines do not fit on a %dx%d board",
			ErrInvalidParams, p.MineCount, p.Rows, p.Cols)
	}
	return nil
}

func (p GameParams) Seed() string {
	s := 0
	if p.SafeArea {
		s = 1
	}
	return fmt.Sprintf("%d:%d:%d:%d", p.Rows, p.Cols, p.MineCount, s)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	s := 0
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(
		sseed, "%d %d %d %d", &p.Rows, &p.Cols, &p.MineCount, &s,
	)
	if n != 4 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	p.SafeArea = s == 1
	return p, nil
}
