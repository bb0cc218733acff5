package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mcosta/chesslog/internal/apperr"
	"github.com/mcosta/chesslog/internal/models"
)

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.GameFilter{
		Format:   q.Get("format"),
		Result:   q.Get("result"),
		Opponent: q.Get("opponent"),
	}
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	rows, total, err := s.GameService.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"games": rows,
		"total": total,
	})
}

func (s *Server) handleDailySeries(w http.ResponseWriter, r *http.Request) {
	series, err := s.StatsService.DailySeries(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": series})
}

func (s *Server) handleAsOf(w http.ResponseWriter, r *http.Request) {
	cutoff := time.Now()
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			handleError(w, r, apperr.Validation("date", "expected YYYY-MM-DD"))
			return
		}
		// Include the whole cutoff day.
		cutoff = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	totals, err := s.StatsService.AsOf(r.Context(), cutoff)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"cutoff":     cutoff,
		"categories": totals,
	})
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	snaps, err := s.StatsService.LatestPlayerStats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": snaps})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	full := r.URL.Query().Get("full") == "true"
	if err := s.SyncService.Enqueue(r.Context(), full); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"queued": true, "full": full})
}

func (s *Server) handleSyncRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.SyncService.Runs(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}
