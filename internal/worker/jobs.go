package worker

import (
	"context"

	"github.com/mcosta/chesslog/internal/ingest"
)

// SyncJob runs one ingestion pass in the background.
type SyncJob struct {
	Syncer *ingest.Syncer
	Full   bool
}

func (j *SyncJob) Name() string { return "sync_games" }

func (j *SyncJob) Run(ctx context.Context) error {
	_, err := j.Syncer.Run(ctx, j.Full)
	return err
}

// PullStatsJob records one player-stats snapshot in the background.
type PullStatsJob struct {
	Puller *ingest.StatsPuller
}

func (j *PullStatsJob) Name() string { return "pull_stats" }

func (j *PullStatsJob) Run(ctx context.Context) error {
	_, err := j.Puller.Pull(ctx)
	return err
}
