package services

import (
	"context"
	"time"

	"github.com/mcosta/chesslog/internal/apperr"
	"github.com/mcosta/chesslog/internal/logger"
	"github.com/mcosta/chesslog/internal/models"
	"github.com/mcosta/chesslog/internal/repository"
	"github.com/mcosta/chesslog/internal/stats"
)

// StatsService computes aggregate statistics from the persisted dataset.
type StatsService interface {
	DailySeries(ctx context.Context) ([]models.DailyStatSnapshot, error)
	AsOf(ctx context.Context, cutoff time.Time) (map[string]models.CategoryTotals, error)
	LatestPlayerStats(ctx context.Context) ([]models.StatSnapshot, error)
}

type statsService struct {
	games     repository.GameRepository
	snapshots repository.StatSnapshotRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(games repository.GameRepository, snapshots repository.StatSnapshotRepository) StatsService {
	return &statsService{games: games, snapshots: snapshots}
}

func (s *statsService) DailySeries(ctx context.Context) ([]models.DailyStatSnapshot, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing daily series")

	rows, err := s.games.ReadAll(ctx)
	if err != nil {
		log.Error("failed to read dataset: %v", err)
		return nil, apperr.Internal(err)
	}
	events := stats.BuildEvents(rows)
	series := stats.ComputeDailySeries(events, time.Now())
	log.Debug("daily series: %d events, %d days", len(events), len(series))
	return series, nil
}

func (s *statsService) AsOf(ctx context.Context, cutoff time.Time) (map[string]models.CategoryTotals, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing as-of snapshot: cutoff=%v", cutoff)

	rows, err := s.games.ReadAll(ctx)
	if err != nil {
		log.Error("failed to read dataset: %v", err)
		return nil, apperr.Internal(err)
	}
	return stats.ComputeAsOf(stats.BuildEvents(rows), cutoff), nil
}

func (s *statsService) LatestPlayerStats(ctx context.Context) ([]models.StatSnapshot, error) {
	log := logger.FromContext(ctx)

	snaps, err := s.snapshots.Latest(ctx)
	if err != nil {
		log.Error("failed to read player stats: %v", err)
		return nil, apperr.Internal(err)
	}
	return snaps, nil
}
