package app

import (
	"github.com/vancomm/minesweeper-engine/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.logger, a.manager, a.jwt, a.ws)

	a.router.HandleFunc("GET /health", handlers.Health(a.logger, a.backends))

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("DELETE /game/{id}", game.Delete)
	a.router.HandleFunc("POST /game/{id}/{move}", game.MakeAMove)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)
}
