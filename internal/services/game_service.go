package services

import (
	"context"

	"github.com/mcosta/chesslog/internal/apperr"
	"github.com/mcosta/chesslog/internal/logger"
	"github.com/mcosta/chesslog/internal/models"
	"github.com/mcosta/chesslog/internal/repository"
)

// GameService handles dataset read access.
type GameService interface {
	List(ctx context.Context, filter models.GameFilter) ([]models.GameRow, int, error)
}

type gameService struct {
	games repository.GameRepository
}

// NewGameService creates a new GameService.
func NewGameService(games repository.GameRepository) GameService {
	return &gameService{games: games}
}

func (s *gameService) List(ctx context.Context, filter models.GameFilter) ([]models.GameRow, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing games: format=%s, result=%s, limit=%d, offset=%d",
		filter.Format, filter.Result, filter.Limit, filter.Offset)

	rows, err := s.games.List(ctx, filter)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, 0, apperr.Internal(err)
	}
	total, err := s.games.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count games: %v", err)
		return nil, 0, apperr.Internal(err)
	}
	return rows, total, nil
}
