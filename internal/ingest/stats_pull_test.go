package ingest_test

import (
	"context"
	"testing"
	"time"

	"github.com/mcosta/chesslog/internal/ingest"
	"github.com/mcosta/chesslog/internal/repository"
	"github.com/mcosta/chesslog/internal/repository/sqlite"
	"github.com/mcosta/chesslog/internal/testutil"
	"github.com/mcosta/chesslog/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func statsDoc(blitzRating int) map[string]any {
	return map[string]any{
		"chess_blitz": map[string]any{
			"last":   map[string]any{"rating": blitzRating},
			"record": map[string]any{"win": 10, "loss": 8},
		},
	}
}

func newPuller(t *testing.T, client *mocks.MockChessClient, now func() time.Time) (*ingest.StatsPuller, repository.StatSnapshotRepository) {
	t.Helper()
	snapshots := sqlite.NewStatSnapshotRepository(testutil.NewTestDB(t).DB)
	return &ingest.StatsPuller{
		Client:               client,
		Snapshots:            snapshots,
		Username:             "alice",
		ZeroDeltaMinInterval: 6 * time.Hour,
		Now:                  now,
	}, snapshots
}

func TestStatsPuller_Pull_RecordsSnapshot(t *testing.T) {
	client := new(mocks.MockChessClient)
	client.On("FetchPlayerStats", mock.Anything, "alice").Return(statsDoc(1500), nil)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	puller, snapshots := newPuller(t, client, func() time.Time { return base })

	n, err := puller.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	latest, err := snapshots.Latest(context.Background())
	require.NoError(t, err)
	require.Len(t, latest, 3)
	assert.Equal(t, "chess_blitz.last.rating", latest[0].Path)
	assert.Equal(t, "1500", latest[0].Value)
}

func TestStatsPuller_Pull_SuppressesUnchangedSameDay(t *testing.T) {
	client := new(mocks.MockChessClient)
	client.On("FetchPlayerStats", mock.Anything, "alice").Return(statsDoc(1500), nil)

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	puller, _ := newPuller(t, client, func() time.Time { return now })

	n, err := puller.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Same day, within the interval, identical values: suppressed.
	now = now.Add(time.Hour)
	n, err = puller.Pull(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStatsPuller_Pull_ChangedValuesAreNotSuppressed(t *testing.T) {
	client := new(mocks.MockChessClient)
	client.On("FetchPlayerStats", mock.Anything, "alice").Return(statsDoc(1500), nil).Once()
	client.On("FetchPlayerStats", mock.Anything, "alice").Return(statsDoc(1512), nil)

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	puller, snapshots := newPuller(t, client, func() time.Time { return now })

	_, err := puller.Pull(context.Background())
	require.NoError(t, err)

	now = now.Add(time.Hour)
	n, err := puller.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	latest, err := snapshots.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1512", latest[0].Value)
}

func TestStatsPuller_Pull_IntervalElapsedWritesAgain(t *testing.T) {
	client := new(mocks.MockChessClient)
	client.On("FetchPlayerStats", mock.Anything, "alice").Return(statsDoc(1500), nil)

	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	puller, _ := newPuller(t, client, func() time.Time { return now })

	_, err := puller.Pull(context.Background())
	require.NoError(t, err)

	// Unchanged values, same day, but past the interval.
	now = now.Add(7 * time.Hour)
	n, err := puller.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStatsPuller_Pull_NextDayWritesAgain(t *testing.T) {
	client := new(mocks.MockChessClient)
	client.On("FetchPlayerStats", mock.Anything, "alice").Return(statsDoc(1500), nil)

	now := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	puller, _ := newPuller(t, client, func() time.Time { return now })

	_, err := puller.Pull(context.Background())
	require.NoError(t, err)

	now = now.Add(time.Hour) // crosses midnight
	n, err := puller.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStatsPuller_Pull_NoUsername(t *testing.T) {
	puller := &ingest.StatsPuller{}
	_, err := puller.Pull(context.Background())
	assert.ErrorIs(t, err, ingest.ErrNoUsername)
}
