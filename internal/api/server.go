package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mcosta/chesslog/internal/services"
)

// Server wires the HTTP surface over the services layer.
type Server struct {
	GameService  services.GameService
	StatsService services.StatsService
	SyncService  services.SyncService
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/games", s.handleListGames)
	r.Get("/stats/daily", s.handleDailySeries)
	r.Get("/stats/asof", s.handleAsOf)
	r.Get("/stats/player", s.handlePlayerStats)
	r.Post("/sync", s.handleSync)
	r.Get("/sync/runs", s.handleSyncRuns)

	return r
}
