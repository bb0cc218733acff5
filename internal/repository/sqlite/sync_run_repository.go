package sqlite

import (
	"context"
	"database/sql"

	"github.com/mcosta/chesslog/internal/logger"
	"github.com/mcosta/chesslog/internal/models"
	"github.com/mcosta/chesslog/internal/repository"
)

type syncRunRepository struct {
	db *sql.DB
}

// NewSyncRunRepository creates the SQLite-backed SyncRunRepository.
func NewSyncRunRepository(db *sql.DB) repository.SyncRunRepository {
	return &syncRunRepository{db: db}
}

func (r *syncRunRepository) Insert(ctx context.Context, run models.SyncRun) error {
	log := logger.FromContext(ctx).WithPrefix("sync_run_repo")
	log.Debug("recording sync run: id=%s, new_games=%d", run.ID, run.NewGames)

	var finishedAt any
	if run.FinishedAt != nil {
		finishedAt = run.FinishedAt.UTC()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO sync_runs (id, username, archives_seen, archives_fetched, archives_failed, new_games, started_at, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, run.ID, run.Username, run.ArchivesSeen, run.ArchivesFetched, run.ArchivesFailed,
		run.NewGames, run.StartedAt.UTC(), finishedAt)
	if err != nil {
		log.Error("failed to insert sync run: %v", err)
	}
	return err
}

func (r *syncRunRepository) List(ctx context.Context, limit int) ([]models.SyncRun, error) {
	log := logger.FromContext(ctx).WithPrefix("sync_run_repo")
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, username, archives_seen, archives_fetched, archives_failed, new_games, started_at, finished_at
FROM sync_runs
ORDER BY started_at DESC
LIMIT ?
`, limit)
	if err != nil {
		log.Error("failed to list sync runs: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.SyncRun
	for rows.Next() {
		var (
			run        models.SyncRun
			finishedAt sql.NullTime
		)
		if err := rows.Scan(&run.ID, &run.Username, &run.ArchivesSeen, &run.ArchivesFetched,
			&run.ArchivesFailed, &run.NewGames, &run.StartedAt, &finishedAt); err != nil {
			log.Error("failed to scan sync run: %v", err)
			return nil, err
		}
		if finishedAt.Valid {
			t := finishedAt.Time.UTC()
			run.FinishedAt = &t
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
