package ingest_test

import (
	"testing"

	"github.com/mcosta/chesslog/internal/chesscom"
	"github.com/mcosta/chesslog/internal/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawGame(url string) chesscom.RawGame {
	return chesscom.RawGame{
		URL:       url,
		TimeClass: "blitz",
		Rules:     "chess",
		White:     chesscom.Player{Username: "alice", Rating: 1500, Result: "win"},
		Black:     chesscom.Player{Username: "bob", Rating: 1480, Result: "resigned"},
	}
}

func TestMergeNewGames_ReversesForHeadInsertion(t *testing.T) {
	// The API returns oldest first; after head insertion the dataset must
	// read newest first, so the batch comes back reversed.
	batch := []chesscom.RawGame{rawGame("g1"), rawGame("g2"), rawGame("g3")}

	rows := ingest.MergeNewGames(batch, map[string]bool{}, "alice")

	require.Len(t, rows, 3)
	assert.Equal(t, "g3", rows[0].URL)
	assert.Equal(t, "g2", rows[1].URL)
	assert.Equal(t, "g1", rows[2].URL)
}

func TestMergeNewGames_FiltersExistingKeys(t *testing.T) {
	batch := []chesscom.RawGame{rawGame("g1"), rawGame("g2")}
	existing := map[string]bool{"g1": true}

	rows := ingest.MergeNewGames(batch, existing, "alice")

	require.Len(t, rows, 1)
	assert.Equal(t, "g2", rows[0].URL)
}

func TestMergeNewGames_Idempotent(t *testing.T) {
	batch := []chesscom.RawGame{rawGame("g1"), rawGame("g2")}
	existing := map[string]bool{}

	first := ingest.MergeNewGames(batch, existing, "alice")
	require.Len(t, first, 2)

	second := ingest.MergeNewGames(batch, existing, "alice")
	assert.Empty(t, second)
}

func TestMergeNewGames_DropsDuplicatesWithinBatch(t *testing.T) {
	batch := []chesscom.RawGame{rawGame("g1"), rawGame("g1")}

	rows := ingest.MergeNewGames(batch, map[string]bool{}, "alice")
	assert.Len(t, rows, 1)
}

func TestMergeNewGames_SkipsRowsWithoutURL(t *testing.T) {
	batch := []chesscom.RawGame{rawGame(""), rawGame("g1")}

	rows := ingest.MergeNewGames(batch, map[string]bool{}, "alice")
	require.Len(t, rows, 1)
	assert.Equal(t, "g1", rows[0].URL)
}

func TestMergeNewGames_EmptyBatchIsNoOp(t *testing.T) {
	assert.Empty(t, ingest.MergeNewGames(nil, map[string]bool{}, "alice"))
}
