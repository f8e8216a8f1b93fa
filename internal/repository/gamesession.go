package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type GameSession struct {
	GameSessionId string
	Rows          int
	Cols          int
	MineCount     int
	Status        string
	Started       bool
	State         []byte
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

func (s GameSession) Record() (*session.Record, error) {
	game, err := mines.DecodeGame(s.State)
	if err != nil {
		return nil, fmt.Errorf("game session %s: %w", s.GameSessionId, err)
	}
	return &session.Record{
		ID:        s.GameSessionId,
		Game:      game,
		CreatedAt: s.CreatedAt.Time.UTC(),
		UpdatedAt: s.UpdatedAt.Time.UTC(),
	}, nil
}

func recordArgs(rec *session.Record) (pgx.NamedArgs, error) {
	state, err := rec.Game.Bytes()
	if err != nil {
		return nil, err
	}
	return pgx.NamedArgs{
		"game_session_id": rec.ID,
		"rows":            rec.Game.Rows,
		"cols":            rec.Game.Cols,
		"mine_count":      rec.Game.MineCount,
		"status":          rec.Game.Status.String(),
		"started":         rec.Game.Started,
		"state":           state,
		"created_at":      rec.CreatedAt,
		"updated_at":      rec.UpdatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// Create implements [session.Store].
func (q *Queries) Create(ctx context.Context, rec *session.Record) error {
	args, err := recordArgs(rec)
	if err != nil {
		return err
	}
	_, err = q.db.Exec(
		ctx,
		`INSERT INTO game_session (
			game_session_id, rows, cols, mine_count, status, started, state,
			created_at, updated_at
		)
		VALUES (
			@game_session_id, @rows, @cols, @mine_count, @status, @started, @state,
			@created_at, @updated_at
		)`,
		args,
	)
	if isUniqueViolation(err) {
		return session.ErrExists
	}
	return err
}

func (q *Queries) FetchGameSession(ctx context.Context, id string) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		id,
	)
	gs, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	return gs, err
}

// Load implements [session.Store].
func (q *Queries) Load(ctx context.Context, id string) (*session.Record, error) {
	gs, err := q.FetchGameSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return gs.Record()
}

// Save implements [session.Store].
func (q *Queries) Save(ctx context.Context, rec *session.Record) error {
	args, err := recordArgs(rec)
	if err != nil {
		return err
	}
	tag, err := q.db.Exec(
		ctx,
		`UPDATE game_session
		SET status = @status, started = @started, state = @state,
			updated_at = @updated_at
		WHERE game_session_id = @game_session_id`,
		args,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return session.ErrNotFound
	}
	return nil
}

// Delete implements [session.Store].
func (q *Queries) Delete(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, "DELETE FROM game_session WHERE game_session_id = $1", id)
	return err
}

// DeleteStale removes sessions untouched since before.
func (q *Queries) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	tag, err := q.db.Exec(ctx, "DELETE FROM game_session WHERE updated_at < $1", before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
