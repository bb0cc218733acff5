// Package ingest implements the incremental game ingestion pipeline.
package ingest

import (
	"github.com/mcosta/chesslog/internal/chesscom"
	"github.com/mcosta/chesslog/internal/models"
	"github.com/mcosta/chesslog/internal/normalize"
	"github.com/mcosta/chesslog/internal/pgn"
)

// MergeNewGames filters a fetched batch down to games whose URL is not yet
// in the dataset, normalizes the survivors, and reverses the result. The API
// returns games oldest-first within an archive; the dataset keeps rows
// newest-first with new batches inserted at the head, so reversing preserves
// chronological order across repeated runs.
//
// existingKeys is updated in place so duplicates within one run are also
// dropped. An empty return means nothing to insert, which is a no-op, not an
// error. Calling twice with the same batch yields nothing the second time.
func MergeNewGames(batch []chesscom.RawGame, existingKeys map[string]bool, trackedUsername string) []models.GameRow {
	var rows []models.GameRow
	for _, raw := range batch {
		if raw.URL == "" || existingKeys[raw.URL] {
			continue
		}
		existingKeys[raw.URL] = true

		ann := pgn.ParseAnnotation(raw.PGN)
		rows = append(rows, normalize.Normalize(raw, ann, trackedUsername))
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows
}
