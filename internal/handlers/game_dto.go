package handlers

import (
	"net/url"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

// NewGameDTO overrides the configured board parameters field by field.
type NewGameDTO struct {
	Rows      *int  `schema:"rows"`
	Cols      *int  `schema:"cols"`
	MineCount *int  `schema:"mine_count"`
	SafeArea  *bool `schema:"safe_area"`
}

func ParseNewGameDTO(src url.Values) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (dto NewGameDTO) Params(defaults mines.GameParams) mines.GameParams {
	p := defaults
	if dto.Rows != nil {
		p.Rows = *dto.Rows
	}
	if dto.Cols != nil {
		p.Cols = *dto.Cols
	}
	if dto.MineCount != nil {
		p.MineCount = *dto.MineCount
	}
	if dto.SafeArea != nil {
		p.SafeArea = *dto.SafeArea
	}
	return p
}

type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src url.Values) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type GameSessionDTO struct {
	SessionId string       `json:"session_id"`
	Token     string       `json:"token,omitempty"`
	Rows      int          `json:"rows"`
	Cols      int          `json:"cols"`
	MineCount int          `json:"mine_count"`
	SafeArea  bool         `json:"safe_area"`
	Status    mines.Status `json:"status"`
	FlagsLeft int          `json:"flags_left"`
	Started   bool         `json:"started"`
	Grid      mines.Grid   `json:"grid"`
	CreatedAt int64        `json:"created_at"`
	UpdatedAt int64        `json:"updated_at"`
}

func NewGameSessionDTO(rec *session.Record, snap mines.Snapshot) *GameSessionDTO {
	return &GameSessionDTO{
		SessionId: rec.ID,
		Rows:      rec.Game.Rows,
		Cols:      rec.Game.Cols,
		MineCount: rec.Game.MineCount,
		SafeArea:  rec.Game.SafeArea,
		Status:    snap.Status,
		FlagsLeft: snap.FlagsLeft,
		Started:   snap.Started,
		Grid:      snap.PlayerGrid(),
		CreatedAt: rec.CreatedAt.UnixMilli(),
		UpdatedAt: rec.UpdatedAt.UnixMilli(),
	}
}
