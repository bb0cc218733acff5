package services

import (
	"context"

	"github.com/mcosta/chesslog/internal/apperr"
	"github.com/mcosta/chesslog/internal/ingest"
	"github.com/mcosta/chesslog/internal/logger"
	"github.com/mcosta/chesslog/internal/models"
	"github.com/mcosta/chesslog/internal/repository"
	"github.com/mcosta/chesslog/internal/worker"
)

// SyncService queues ingestion runs and exposes their audit records.
type SyncService interface {
	Enqueue(ctx context.Context, full bool) error
	Runs(ctx context.Context, limit int) ([]models.SyncRun, error)
}

type syncService struct {
	syncer *ingest.Syncer
	pool   *worker.Pool
	runs   repository.SyncRunRepository
}

// NewSyncService creates a new SyncService.
func NewSyncService(syncer *ingest.Syncer, pool *worker.Pool, runs repository.SyncRunRepository) SyncService {
	return &syncService{syncer: syncer, pool: pool, runs: runs}
}

func (s *syncService) Enqueue(ctx context.Context, full bool) error {
	log := logger.FromContext(ctx)
	log.Info("queueing sync job: full=%v", full)

	if !s.pool.Submit(&worker.SyncJob{Syncer: s.syncer, Full: full}) {
		return apperr.BadRequest("a sync is already queued")
	}
	return nil
}

func (s *syncService) Runs(ctx context.Context, limit int) ([]models.SyncRun, error) {
	log := logger.FromContext(ctx)

	runs, err := s.runs.List(ctx, limit)
	if err != nil {
		log.Error("failed to list sync runs: %v", err)
		return nil, apperr.Internal(err)
	}
	return runs, nil
}
