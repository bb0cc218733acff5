package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/mcosta/chesslog/internal/logger"
	"github.com/mcosta/chesslog/internal/models"
	"github.com/mcosta/chesslog/internal/repository"
)

// gameColumns is the canonical dataset column order, excluding position.
var gameColumns = []string{
	"url", "time_control", "base_time_minutes", "increment_seconds", "rated",
	"time_class", "rules", "format", "end_time", "duration_seconds",
	"my_rating", "my_color", "opponent", "opponent_rating", "result",
	"termination", "event", "site", "date", "round", "opening", "eco",
	"eco_url", "utc_date", "utc_time", "start_time", "end_date",
	"end_time_pgn", "current_position", "pgn", "san_moves", "clock_times",
	"move_count",
}

type gameRepository struct {
	db *sql.DB
}

// NewGameRepository creates the SQLite-backed GameRepository.
func NewGameRepository(db *sql.DB) repository.GameRepository {
	return &gameRepository{db: db}
}

func scanGame(scan func(dest ...any) error) (models.GameRow, error) {
	var (
		g       models.GameRow
		endTime sql.NullTime
	)
	err := scan(
		&g.URL, &g.TimeControl, &g.BaseTimeMinutes, &g.IncrementSeconds, &g.Rated,
		&g.TimeClass, &g.Rules, &g.Format, &endTime, &g.DurationSeconds,
		&g.MyRating, &g.MyColor, &g.Opponent, &g.OpponentRating, &g.Result,
		&g.Termination, &g.Event, &g.Site, &g.Date, &g.Round, &g.Opening, &g.ECO,
		&g.ECOURL, &g.UTCDate, &g.UTCTime, &g.StartTime, &g.EndDate,
		&g.EndTimePGN, &g.CurrentPosition, &g.PGN, &g.SANMoves, &g.ClockTimes,
		&g.MoveCount,
	)
	if err != nil {
		return g, err
	}
	if endTime.Valid {
		g.EndTime = endTime.Time.UTC()
	}
	return g, nil
}

func insertArgs(g models.GameRow) []any {
	var endTime any
	if !g.EndTime.IsZero() {
		endTime = g.EndTime.UTC()
	}
	return []any{
		g.URL, g.TimeControl, g.BaseTimeMinutes, g.IncrementSeconds, g.Rated,
		g.TimeClass, g.Rules, g.Format, endTime, g.DurationSeconds,
		g.MyRating, g.MyColor, g.Opponent, g.OpponentRating, g.Result,
		g.Termination, g.Event, g.Site, g.Date, g.Round, g.Opening, g.ECO,
		g.ECOURL, g.UTCDate, g.UTCTime, g.StartTime, g.EndDate,
		g.EndTimePGN, g.CurrentPosition, g.PGN, g.SANMoves, g.ClockTimes,
		g.MoveCount,
	}
}

var insertGameSQL = fmt.Sprintf(
	`INSERT INTO games (position, %s) VALUES (?%s)`,
	strings.Join(gameColumns, ", "),
	strings.Repeat(", ?", len(gameColumns)),
)

func (r *gameRepository) ReadAll(ctx context.Context) ([]models.GameRow, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT %s FROM games ORDER BY position ASC`, strings.Join(gameColumns, ", ")))
	if err != nil {
		log.Error("failed to read games: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.GameRow
	for rows.Next() {
		g, err := scanGame(rows.Scan)
		if err != nil {
			log.Error("failed to scan game row: %v", err)
			return nil, err
		}
		out = append(out, g)
	}
	log.Debug("read %d games", len(out))
	return out, rows.Err()
}

func applyFilter(query squirrel.SelectBuilder, filter models.GameFilter) squirrel.SelectBuilder {
	if filter.Format != "" {
		query = query.Where(squirrel.Eq{"format": filter.Format})
	}
	if filter.Result != "" {
		query = query.Where(squirrel.Eq{"result": filter.Result})
	}
	if filter.Opponent != "" {
		query = query.Where(squirrel.Eq{"opponent": filter.Opponent})
	}
	return query
}

func (r *gameRepository) List(ctx context.Context, filter models.GameFilter) ([]models.GameRow, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("listing games: format=%s, result=%s, opponent=%s",
		filter.Format, filter.Result, filter.Opponent)

	query := applyFilter(sqlBuilder.Select(gameColumns...).From("games"), filter).
		OrderBy("position ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.GameRow
	for rows.Next() {
		g, err := scanGame(rows.Scan)
		if err != nil {
			log.Error("failed to scan game row: %v", err)
			return nil, err
		}
		out = append(out, g)
	}
	log.Debug("found %d games", len(out))
	return out, rows.Err()
}

func (r *gameRepository) Count(ctx context.Context, filter models.GameFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	query := applyFilter(sqlBuilder.Select("COUNT(*)").From("games"), filter)
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count games: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *gameRepository) Append(ctx context.Context, games []models.GameRow) error {
	if len(games) == 0 {
		return nil
	}
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("appending %d games", len(games))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		var next int
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position) + 1, 0) FROM games`).Scan(&next); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, insertGameSQL)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, g := range games {
			args := append([]any{next + i}, insertArgs(g)...)
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("insert game %s: %w", g.URL, err)
			}
		}
		return nil
	})
}

// InsertAt inserts the batch starting at the given position, shifting every
// row at or below it down by the batch size. Index 0 is the dataset head.
func (r *gameRepository) InsertAt(ctx context.Context, index int, games []models.GameRow) error {
	if len(games) == 0 {
		return nil
	}
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("inserting %d games at position %d", len(games), index)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE games SET position = position + ? WHERE position >= ?`,
			len(games), index); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, insertGameSQL)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, g := range games {
			args := append([]any{index + i}, insertArgs(g)...)
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("insert game %s: %w", g.URL, err)
			}
		}
		return nil
	})
}

func (r *gameRepository) ExistingURLs(ctx context.Context) (map[string]bool, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT url FROM games`)
	if err != nil {
		log.Error("failed to list urls: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			log.Error("failed to scan url: %v", err)
			return nil, err
		}
		out[url] = true
	}
	return out, rows.Err()
}

func (r *gameRepository) ColumnValues(ctx context.Context, column string) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	valid := false
	for _, c := range gameColumns {
		if c == column {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("unknown column %q", column)
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT %s FROM games ORDER BY position ASC`, column))
	if err != nil {
		log.Error("failed to read column %s: %v", column, err)
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			log.Error("failed to scan column value: %v", err)
			return nil, err
		}
		out = append(out, v.String)
	}
	return out, rows.Err()
}
