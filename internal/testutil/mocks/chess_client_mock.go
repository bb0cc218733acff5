package mocks

import (
	"context"

	"github.com/mcosta/chesslog/internal/chesscom"
	"github.com/stretchr/testify/mock"
)

// MockChessClient is a mock implementation of chesscom.ClientInterface.
type MockChessClient struct {
	mock.Mock
}

func (m *MockChessClient) FetchArchives(ctx context.Context, username string) ([]string, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockChessClient) FetchMonthly(ctx context.Context, archiveURL string) ([]chesscom.RawGame, error) {
	args := m.Called(ctx, archiveURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]chesscom.RawGame), args.Error(1)
}

func (m *MockChessClient) FetchPlayerStats(ctx context.Context, username string) (map[string]any, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

var _ chesscom.ClientInterface = (*MockChessClient)(nil)
