package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var errUnauthorized = errors.New("missing or invalid session token")

type GameHandler struct {
	logger  *slog.Logger
	manager *session.Manager
	jwt     *config.JWT
	ws      *config.WebSocket
}

func NewGameHandler(
	logger *slog.Logger,
	manager *session.Manager,
	jwt *config.JWT,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		logger:  logger,
		manager: manager,
		jwt:     jwt,
		ws:      ws,
	}
}

// authorize checks that the request carries a token for session id.
func (g GameHandler) authorize(w http.ResponseWriter, r *http.Request, id string) bool {
	claims, ok := middleware.SessionClaims(r.Context())
	if !ok || claims.SessionId != id {
		sendErrorOrLog(w, g.logger, http.StatusUnauthorized, errUnauthorized)
		return false
	}
	return true
}

// sendPlayError maps session and engine errors to a status code.
func (g GameHandler) sendPlayError(w http.ResponseWriter, id string, err error) {
	var assertion mines.AssertionError
	switch {
	case errors.Is(err, session.ErrNotFound):
		sendErrorOrLog(w, g.logger, http.StatusNotFound, err)
	case errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrInvalidParams),
		errors.Is(err, session.ErrBadMove):
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
	case errors.As(err, &assertion):
		g.logger.Error("corrupt game state", slog.String("id", id), slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	default:
		g.logger.Error("unable to play", slog.String("id", id), slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	rec, err := g.manager.Create(r.Context(), dto.Params(g.manager.Defaults()))
	if errors.Is(err, mines.ErrInvalidParams) {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game session", slog.Any("error", err))
		return
	}

	token, err := g.jwt.Sign(rec.ID)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to sign session token", slog.Any("error", err))
		return
	}

	res := NewGameSessionDTO(rec, rec.Game.Snapshot())
	res.Token = token
	sendJSONOrLog(w, g.logger, http.StatusCreated, res)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !g.authorize(w, r, id) {
		return
	}

	rec, err := g.manager.Get(r.Context(), id)
	if err != nil {
		g.sendPlayError(w, id, err)
		return
	}

	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(rec, rec.Game.Snapshot()))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !g.authorize(w, r, id) {
		return
	}

	kind, err := session.ParseMoveKind(r.PathValue("move"))
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	move := session.Move{Kind: kind}
	if kind.HasPoint() {
		pos, err := ParsePosition(r.URL.Query())
		if err != nil {
			sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
			return
		}
		move.Row, move.Col = pos.Row, pos.Col
	}

	rec, snap, err := g.manager.Play(r.Context(), id, move)
	if err != nil {
		g.sendPlayError(w, id, err)
		return
	}

	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(rec, snap))
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !g.authorize(w, r, id) {
		return
	}
	if err := g.manager.Delete(r.Context(), id); err != nil {
		g.logger.Error("unable to delete game session",
			slog.String("id", id), slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func describe(rec *session.Record) string {
	return fmt.Sprintf("%s (%s)", rec.ID, rec.Game.Seed())
}
