package models

import "time"

// Rated game categories tracked by the aggregator. Games in any other
// variant are excluded from aggregation.
const (
	CategoryBullet   = "bullet"
	CategoryBlitz    = "blitz"
	CategoryRapid    = "rapid"
	CategoryDaily    = "daily"
	CategoryChess960 = "chess960"
	CategoryDaily960 = "daily960"
)

// Categories lists the tracked categories in display order.
var Categories = []string{
	CategoryBullet,
	CategoryBlitz,
	CategoryRapid,
	CategoryDaily,
	CategoryChess960,
	CategoryDaily960,
}

// DailyEvent is one aggregation input, derived from a GameRow the tracked
// user played in. Recomputed on every run, never persisted.
type DailyEvent struct {
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	Outcome  string    `json:"outcome"` // "win", "loss", "draw" or ""
	Rating   int       `json:"rating"`  // 0 when unknown
}

// CategoryTotals holds cumulative counters for one category.
type CategoryTotals struct {
	Rating int `json:"rating"` // last known rating, carry-forward
	Games  int `json:"games"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// DayCategoryStat is the day-scoped view of one category within a
// DailyStatSnapshot: end-of-day cumulative rating plus that day's deltas.
type DayCategoryStat struct {
	EndOfDayRating int     `json:"end_of_day_rating"`
	RatingChange   int     `json:"rating_change"`
	GamesToday     int     `json:"games_today"`
	WinsToday      int     `json:"wins_today"`
	LossesToday    int     `json:"losses_today"`
	DrawsToday     int     `json:"draws_today"`
	WinPct         float64 `json:"win_pct"`
	Score          string  `json:"score"` // "<wins + 0.5*draws>/<gamesToday>"
}

// DailyStatSnapshot is one row of the daily series, reflecting end-of-day
// state for every tracked category.
type DailyStatSnapshot struct {
	Date       time.Time                  `json:"date"`
	Categories map[string]DayCategoryStat `json:"categories"`
}
