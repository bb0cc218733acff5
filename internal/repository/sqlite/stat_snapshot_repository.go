package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mcosta/chesslog/internal/logger"
	"github.com/mcosta/chesslog/internal/models"
	"github.com/mcosta/chesslog/internal/repository"
)

type statSnapshotRepository struct {
	db *sql.DB
}

// NewStatSnapshotRepository creates the SQLite-backed StatSnapshotRepository.
func NewStatSnapshotRepository(db *sql.DB) repository.StatSnapshotRepository {
	return &statSnapshotRepository{db: db}
}

func (r *statSnapshotRepository) InsertBatch(ctx context.Context, snaps []models.StatSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	log := logger.FromContext(ctx).WithPrefix("stat_repo")
	log.Debug("inserting %d stat rows", len(snaps))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO stat_snapshots (run_id, path, value, pulled_at) VALUES (?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, s := range snaps {
			if _, err := stmt.ExecContext(ctx, s.RunID, s.Path, s.Value, s.PulledAt.UTC()); err != nil {
				return err
			}
		}
		return nil
	})
}

// Latest returns the rows of the most recent pull.
func (r *statSnapshotRepository) Latest(ctx context.Context) ([]models.StatSnapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("stat_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT run_id, path, value, pulled_at
FROM stat_snapshots
WHERE run_id = (
    SELECT run_id FROM stat_snapshots ORDER BY pulled_at DESC LIMIT 1
)
ORDER BY path ASC
`)
	if err != nil {
		log.Error("failed to read latest snapshot: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.StatSnapshot
	for rows.Next() {
		var s models.StatSnapshot
		if err := rows.Scan(&s.RunID, &s.Path, &s.Value, &s.PulledAt); err != nil {
			log.Error("failed to scan stat row: %v", err)
			return nil, err
		}
		s.PulledAt = s.PulledAt.UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *statSnapshotRepository) LastPulledAt(ctx context.Context) (*time.Time, error) {
	var t time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT pulled_at FROM stat_snapshots ORDER BY pulled_at DESC LIMIT 1`).Scan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
