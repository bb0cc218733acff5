// Package stats derives aggregate statistics by replaying the game history
// in timestamp order.
package stats

import (
	"sort"
	"strings"

	"github.com/mcosta/chesslog/internal/models"
)

// Classify maps a game's rule variant and time class onto an aggregation
// category. ok is false for variants the aggregator does not track.
func Classify(rules, timeClass string) (category string, ok bool) {
	r := strings.ToLower(strings.TrimSpace(rules))
	tc := strings.ToLower(strings.TrimSpace(timeClass))

	if r == "chess" || r == "" {
		switch tc {
		case models.CategoryBullet, models.CategoryBlitz, models.CategoryRapid, models.CategoryDaily:
			return tc, true
		}
		return "", false
	}
	if strings.Contains(r, "960") {
		if tc == "daily" {
			return models.CategoryDaily960, true
		}
		return models.CategoryChess960, true
	}
	return "", false
}

// BuildEvents turns persisted rows into the aggregation event stream, sorted
// by date ascending. Rows without player-perspective fields (the tracked
// user was not a side), without an end time, or in untracked variants are
// excluded.
func BuildEvents(rows []models.GameRow) []models.DailyEvent {
	var events []models.DailyEvent
	for _, row := range rows {
		if row.MyColor == "" || row.EndTime.IsZero() {
			continue
		}
		category, ok := Classify(row.Rules, row.TimeClass)
		if !ok {
			continue
		}
		events = append(events, models.DailyEvent{
			Date:     row.EndTime,
			Category: category,
			Outcome:  row.Result,
			Rating:   row.MyRating,
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}
