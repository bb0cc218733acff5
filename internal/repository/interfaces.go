package repository

import (
	"context"
	"time"

	"github.com/mcosta/chesslog/internal/models"
)

// GameRepository is the tabular store holding the normalized dataset. Rows
// are position-ordered, newest first; url is the primary key.
type GameRepository interface {
	ReadAll(ctx context.Context) ([]models.GameRow, error)
	List(ctx context.Context, filter models.GameFilter) ([]models.GameRow, error)
	Count(ctx context.Context, filter models.GameFilter) (int, error)
	Append(ctx context.Context, rows []models.GameRow) error
	InsertAt(ctx context.Context, index int, rows []models.GameRow) error
	ExistingURLs(ctx context.Context) (map[string]bool, error)
	ColumnValues(ctx context.Context, column string) ([]string, error)
}

// ArchiveRepository tracks monthly archives observed in the listing.
type ArchiveRepository interface {
	List(ctx context.Context) ([]models.ArchiveRef, error)
	Upsert(ctx context.Context, refs []models.ArchiveRef) error
	MarkFetched(ctx context.Context, url string, at time.Time) error
}

// SyncRunRepository stores the per-run audit records.
type SyncRunRepository interface {
	Insert(ctx context.Context, run models.SyncRun) error
	List(ctx context.Context, limit int) ([]models.SyncRun, error)
}

// StatSnapshotRepository stores flattened player-stats pulls.
type StatSnapshotRepository interface {
	InsertBatch(ctx context.Context, snaps []models.StatSnapshot) error
	Latest(ctx context.Context) ([]models.StatSnapshot, error)
	LastPulledAt(ctx context.Context) (*time.Time, error)
}
