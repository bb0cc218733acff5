package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/mcosta/chesslog/internal/logger"
	"github.com/mcosta/chesslog/internal/models"
	"github.com/mcosta/chesslog/internal/repository"
)

type archiveRepository struct {
	db *sql.DB
}

// NewArchiveRepository creates the SQLite-backed ArchiveRepository.
func NewArchiveRepository(db *sql.DB) repository.ArchiveRepository {
	return &archiveRepository{db: db}
}

func (r *archiveRepository) List(ctx context.Context) ([]models.ArchiveRef, error) {
	log := logger.FromContext(ctx).WithPrefix("archive_repo")

	rows, err := r.db.QueryContext(ctx,
		`SELECT url, year_month, active, last_fetched_at FROM archives ORDER BY year_month ASC`)
	if err != nil {
		log.Error("failed to list archives: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.ArchiveRef
	for rows.Next() {
		var (
			ref       models.ArchiveRef
			fetchedAt sql.NullTime
		)
		if err := rows.Scan(&ref.URL, &ref.YearMonth, &ref.Active, &fetchedAt); err != nil {
			log.Error("failed to scan archive row: %v", err)
			return nil, err
		}
		if fetchedAt.Valid {
			t := fetchedAt.Time.UTC()
			ref.LastFetchedAt = &t
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

// Upsert records the listing's archives, refreshing each archive's active
// flag. last_fetched_at is left untouched.
func (r *archiveRepository) Upsert(ctx context.Context, refs []models.ArchiveRef) error {
	if len(refs) == 0 {
		return nil
	}
	log := logger.FromContext(ctx).WithPrefix("archive_repo")
	log.Debug("upserting %d archives", len(refs))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO archives (url, year_month, active) VALUES (?, ?, ?)
ON CONFLICT(url) DO UPDATE SET
    year_month = excluded.year_month,
    active = excluded.active
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, ref := range refs {
			if _, err := stmt.ExecContext(ctx, ref.URL, ref.YearMonth, ref.Active); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *archiveRepository) MarkFetched(ctx context.Context, url string, at time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("archive_repo")

	_, err := r.db.ExecContext(ctx,
		`UPDATE archives SET last_fetched_at = ? WHERE url = ?`, at.UTC(), url)
	if err != nil {
		log.Error("failed to mark archive fetched: %v", err)
	}
	return err
}
