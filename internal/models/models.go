package models

import "time"

// GameRow is the canonical normalized record for one game, in dataset column
// order. URL is the primary key; the dataset keeps rows newest-first.
type GameRow struct {
	URL              string    `json:"url"`
	TimeControl      string    `json:"time_control"`
	BaseTimeMinutes  float64   `json:"base_time_minutes"`
	IncrementSeconds int       `json:"increment_seconds"`
	Rated            bool      `json:"rated"`
	TimeClass        string    `json:"time_class"`
	Rules            string    `json:"rules"`
	Format           string    `json:"format"`
	EndTime          time.Time `json:"end_time"`
	DurationSeconds  int       `json:"duration_seconds"`
	MyRating         int       `json:"my_rating"`
	MyColor          string    `json:"my_color"`
	Opponent         string    `json:"opponent"`
	OpponentRating   int       `json:"opponent_rating"`
	Result           string    `json:"result"`
	Termination      string    `json:"termination"`
	Event            string    `json:"event"`
	Site             string    `json:"site"`
	Date             string    `json:"date"`
	Round            string    `json:"round"`
	Opening          string    `json:"opening"`
	ECO              string    `json:"eco"`
	ECOURL           string    `json:"eco_url"`
	UTCDate          string    `json:"utc_date"`
	UTCTime          string    `json:"utc_time"`
	StartTime        string    `json:"start_time"`
	EndDate          string    `json:"end_date"`
	EndTimePGN       string    `json:"end_time_pgn"`
	CurrentPosition  string    `json:"current_position"`
	PGN              string    `json:"pgn"`
	SANMoves         string    `json:"san_moves"`
	ClockTimes       string    `json:"clock_times"`
	MoveCount        int       `json:"move_count"`
}

type GameFilter struct {
	Format   string
	Result   string
	Opponent string
	Limit    int
	Offset   int
}

// ArchiveRef tracks one monthly archive observed in the listing. Only the
// most recent archive is active; inactive archives that were fetched once
// never change and are skipped on incremental runs.
type ArchiveRef struct {
	URL           string     `json:"url"`
	YearMonth     string     `json:"year_month"`
	Active        bool       `json:"active"`
	LastFetchedAt *time.Time `json:"last_fetched_at"`
}

// SyncRun is the audit record for one ingestion run.
type SyncRun struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	ArchivesSeen    int        `json:"archives_seen"`
	ArchivesFetched int        `json:"archives_fetched"`
	ArchivesFailed  int        `json:"archives_failed"`
	NewGames        int        `json:"new_games"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at"`
}

// StatSnapshot is one flattened player-stats value as of a pull.
type StatSnapshot struct {
	RunID    string    `json:"run_id"`
	Path     string    `json:"path"`
	Value    string    `json:"value"`
	PulledAt time.Time `json:"pulled_at"`
}
