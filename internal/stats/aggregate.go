package stats

import (
	"strconv"
	"time"

	"github.com/mcosta/chesslog/internal/models"
)

func fold(totals map[string]models.CategoryTotals, e models.DailyEvent) {
	t := totals[e.Category]
	t.Games++
	switch e.Outcome {
	case "win":
		t.Wins++
	case "loss":
		t.Losses++
	case "draw":
		t.Draws++
	}
	if e.Rating > 0 {
		t.Rating = e.Rating
	}
	totals[e.Category] = t
}

// ComputeAsOf replays all events dated on or before cutoff and returns the
// cumulative per-category totals. Rating is the last observed value, carried
// forward, not averaged.
func ComputeAsOf(events []models.DailyEvent, cutoff time.Time) map[string]models.CategoryTotals {
	totals := make(map[string]models.CategoryTotals)
	for _, e := range events {
		if e.Date.After(cutoff) {
			continue
		}
		fold(totals, e)
	}
	return totals
}

// ComputeDailySeries replays the event stream and emits one snapshot per
// calendar day from the first event's day through today inclusive. Days with
// no events still get a row: counters carry forward and the day-scoped
// fields read zero. Each snapshot reflects end-of-day state; deltas are
// diffed against the immediately preceding day. Events must be sorted by
// date ascending, as BuildEvents returns them. Returns nil for an empty
// stream.
func ComputeDailySeries(events []models.DailyEvent, today time.Time) []models.DailyStatSnapshot {
	if len(events) == 0 {
		return nil
	}

	day := startOfDay(events[0].Date)
	last := startOfDay(today)
	if last.Before(day) {
		last = day
	}

	totals := make(map[string]models.CategoryTotals)
	prev := make(map[string]models.CategoryTotals)

	var series []models.DailyStatSnapshot
	i := 0
	for !day.After(last) {
		next := day.AddDate(0, 0, 1)
		for i < len(events) && events[i].Date.Before(next) {
			fold(totals, events[i])
			i++
		}

		snap := models.DailyStatSnapshot{
			Date:       day,
			Categories: make(map[string]models.DayCategoryStat, len(models.Categories)),
		}
		for _, cat := range models.Categories {
			cur := totals[cat]
			was := prev[cat]
			stat := models.DayCategoryStat{
				EndOfDayRating: cur.Rating,
				GamesToday:     cur.Games - was.Games,
				WinsToday:      cur.Wins - was.Wins,
				LossesToday:    cur.Losses - was.Losses,
				DrawsToday:     cur.Draws - was.Draws,
			}
			// No delta until a prior rating exists for the category.
			if was.Rating > 0 {
				stat.RatingChange = cur.Rating - was.Rating
			}
			if stat.GamesToday > 0 {
				stat.WinPct = float64(stat.WinsToday) / float64(stat.GamesToday)
			}
			stat.Score = renderScore(stat.WinsToday, stat.DrawsToday, stat.GamesToday)
			snap.Categories[cat] = stat
			prev[cat] = cur
		}
		series = append(series, snap)
		day = next
	}
	return series
}

// renderScore formats "<wins + 0.5*draws>/<games>", e.g. "2.5/4".
func renderScore(wins, draws, games int) string {
	score := float64(wins) + 0.5*float64(draws)
	return strconv.FormatFloat(score, 'f', -1, 64) + "/" + strconv.Itoa(games)
}

// startOfDay truncates to the local calendar day boundary.
func startOfDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
