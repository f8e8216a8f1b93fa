package config

import (
	"fmt"
	"os"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// BoardParams are the defaults for games created without explicit
// parameters. BOARD_PARAMS takes a seed such as "16:30:99:1"; otherwise
// BOARD_ROWS, BOARD_COLS, BOARD_MINES and BOARD_SAFE_AREA override the
// 10x10, 15 mine default one by one.
func BoardParams() (mines.GameParams, error) {
	if seed, ok := os.LookupEnv("BOARD_PARAMS"); ok && seed != "" {
		params, err := mines.ParseSeed(seed)
		if err != nil {
			return mines.GameParams{}, fmt.Errorf("BOARD_PARAMS: %w", err)
		}
		return *params, params.Validate()
	}

	params := mines.DefaultParams()
	var err error
	if params.Rows, err = lookupInt("BOARD_ROWS", params.Rows); err != nil {
		return params, err
	}
	if params.Cols, err = lookupInt("BOARD_COLS", params.Cols); err != nil {
		return params, err
	}
	if params.MineCount, err = lookupInt("BOARD_MINES", params.MineCount); err != nil {
		return params, err
	}
	params.SafeArea = lookupBool("BOARD_SAFE_AREA", params.SafeArea)
	return params, params.Validate()
}
