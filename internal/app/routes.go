package app

import (
	"shorashim.app/game/internal/handlers"
)

func (a *App) loadRoutes() {
	puzzles := handlers.NewPuzzleHandler(a.logger, a.dict, a.bank, a.selector)

	a.router.HandleFunc("GET /v1/status", puzzles.Status)
	a.router.HandleFunc("GET /v1/daily", puzzles.Daily)
	a.router.HandleFunc("GET /v1/puzzle", puzzles.ByDate)
	a.router.HandleFunc("POST /v1/grid/check", puzzles.CheckGrid)
	a.router.HandleFunc("POST /v1/grid/hints", puzzles.Hints)
	a.router.HandleFunc("GET /v1/daily/reveal", puzzles.Reveal)
	a.router.HandleFunc("GET /v1/root/{root}", puzzles.Root)
}
