package config

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader     websocket.Upgrader
	WriteTimeout time.Duration
	PingPeriod   time.Duration
	PongWait     time.Duration
}

func NewWebSocket() (*WebSocket, error) {
	origins := AllowedOrigins()
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return len(origins) == 0 || origin == "" || slices.Contains(origins, origin)
		},
	}

	pongWait, err := lookupDuration("WS_PONG_WAIT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	// pings must go out before the peer's read deadline runs out
	pingPeriod := pongWait * 9 / 10
	if pingPeriod <= 0 {
		return nil, fmt.Errorf("WS_PONG_WAIT must be a positive duration, got %s", pongWait)
	}

	ws := &WebSocket{
		Upgrader:     upgrader,
		WriteTimeout: 10 * time.Second,
		PongWait:     pongWait,
		PingPeriod:   pingPeriod,
	}

	return ws, nil
}
