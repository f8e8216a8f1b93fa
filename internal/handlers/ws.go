package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

const outgoingBuffer = 8

// ConnectWS serves the text protocol of [parseCommand] over a WebSocket.
// Every move on the session, from this connection or any other, is pushed
// to the client as a [GameSessionDTO].
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !g.authorize(w, r, id) {
		return
	}
	rec, err := g.manager.Get(r.Context(), id)
	if err != nil {
		g.sendPlayError(w, id, err)
		return
	}

	// subscribe first so that no move after the handshake goes unseen
	updates, unsubscribe := g.manager.Subscribe(id)
	defer unsubscribe()

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("unable to upgrade connection", slog.Any("error", err))
		return
	}
	defer c.Close()

	log := g.logger.With(slog.String("id", id))
	log.Debug("websocket connected", slog.String("session", describe(rec)))

	out := make(chan any, outgoingBuffer)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer c.Close()
		g.writeLoop(c, log, updates, out)
	}()

	send := func(v any) bool {
		select {
		case out <- v:
			return true
		case <-done:
			return false
		}
	}
	g.readLoop(c, log, id, send)
	close(out)
	<-done
	log.Debug("websocket disconnected")
}

func (g GameHandler) readLoop(
	c *websocket.Conn, log *slog.Logger, id string, send func(any) bool,
) {
	c.SetReadDeadline(time.Now().Add(g.ws.PongWait))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(g.ws.PongWait))
	})

	// ws requests carry no cancellation of their own past the upgrade
	ctx := context.Background()
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("read", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}
		for _, text := range splitCommands(string(message)) {
			log.Debug("command", slog.String("text", text))
			cmd, err := parseCommand(text)
			if err != nil {
				if !send(wrapError(err)) {
					return
				}
				continue
			}
			if cmd.get {
				rec, err := g.manager.Get(ctx, id)
				if err != nil {
					if !g.reportWSError(log, send, err) {
						return
					}
					continue
				}
				if !send(NewGameSessionDTO(rec, rec.Game.Snapshot())) {
					return
				}
				continue
			}
			// the result arrives through the subscription
			if _, _, err := g.manager.Play(ctx, id, cmd.move); err != nil {
				if !g.reportWSError(log, send, err) {
					return
				}
			}
		}
	}
}

// reportWSError tells the client about a rejected command. It returns
// false when the connection cannot go on.
func (g GameHandler) reportWSError(log *slog.Logger, send func(any) bool, err error) bool {
	switch {
	case errors.Is(err, mines.ErrOutOfBounds), errors.Is(err, session.ErrBadMove):
		return send(wrapError(err))
	case errors.Is(err, session.ErrNotFound):
		send(wrapError(err))
		return false
	default:
		log.Error("unable to play", slog.Any("error", err))
		send(wrapError(errors.New("internal error")))
		return false
	}
}

func (g GameHandler) writeLoop(
	c *websocket.Conn, log *slog.Logger, updates <-chan session.Update, out <-chan any,
) {
	ticker := time.NewTicker(g.ws.PingPeriod)
	defer ticker.Stop()

	write := func(v any) bool {
		c.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout))
		if err := c.WriteJSON(v); err != nil {
			log.Warn("write", slog.Any("error", err))
			return false
		}
		return true
	}

	for {
		select {
		case u, ok := <-updates:
			if !ok {
				return
			}
			if !write(NewGameSessionDTO(u.Record, u.Snapshot)) {
				return
			}
		case v, ok := <-out:
			if !ok {
				c.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(g.ws.WriteTimeout))
				return
			}
			if !write(v) {
				return
			}
		case <-ticker.C:
			c.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout))
			if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
