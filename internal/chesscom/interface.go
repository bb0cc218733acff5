package chesscom

import "context"

// ClientInterface defines the chess.com API operations the pipeline needs.
// It exists so tests can substitute a mock client.
type ClientInterface interface {
	FetchArchives(ctx context.Context, username string) ([]string, error)
	FetchMonthly(ctx context.Context, archiveURL string) ([]RawGame, error)
	FetchPlayerStats(ctx context.Context, username string) (map[string]any, error)
}

var _ ClientInterface = (*Client)(nil)
