package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcosta/chesslog/internal/chesscom"
	"github.com/mcosta/chesslog/internal/flatten"
	"github.com/mcosta/chesslog/internal/logger"
	"github.com/mcosta/chesslog/internal/models"
	"github.com/mcosta/chesslog/internal/repository"
)

// StatsPuller fetches the player's nested stats document, flattens it to
// dot-path rows, and records a snapshot. A pull that changes nothing on the
// same calendar day is suppressed unless ZeroDeltaMinInterval has elapsed
// since the previous pull, to keep repeated pulls from piling up identical
// rows.
type StatsPuller struct {
	Client               chesscom.ClientInterface
	Snapshots            repository.StatSnapshotRepository
	Username             string
	ZeroDeltaMinInterval time.Duration

	// Now is replaceable in tests; nil means time.Now.
	Now func() time.Time
}

// Pull fetches, flattens, and stores one stats snapshot. Returns the number
// of rows written (0 when the snapshot was suppressed).
func (p *StatsPuller) Pull(ctx context.Context) (int, error) {
	if p.Username == "" {
		return 0, ErrNoUsername
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	log := logger.FromContext(ctx).WithField("username", p.Username)

	raw, err := p.Client.FetchPlayerStats(ctx, p.Username)
	if err != nil {
		return 0, err
	}

	flat := flatten.Flatten(raw)
	pulledAt := now()

	if p.suppress(ctx, flat, pulledAt) {
		log.Info("stats unchanged since last pull, snapshot suppressed")
		return 0, nil
	}

	runID := uuid.NewString()
	snaps := make([]models.StatSnapshot, 0, len(flat))
	for _, path := range flatten.Paths(flat) {
		snaps = append(snaps, models.StatSnapshot{
			RunID:    runID,
			Path:     path,
			Value:    fmt.Sprintf("%v", flat[path]),
			PulledAt: pulledAt,
		})
	}
	if err := p.Snapshots.InsertBatch(ctx, snaps); err != nil {
		return 0, err
	}
	log.Info("recorded %d stat rows", len(snaps))
	return len(snaps), nil
}

func (p *StatsPuller) suppress(ctx context.Context, flat map[string]any, pulledAt time.Time) bool {
	interval := p.ZeroDeltaMinInterval
	if interval <= 0 {
		return false
	}
	lastAt, err := p.Snapshots.LastPulledAt(ctx)
	if err != nil || lastAt == nil {
		return false
	}
	sameDay := lastAt.Year() == pulledAt.Year() && lastAt.YearDay() == pulledAt.YearDay()
	if !sameDay || pulledAt.Sub(*lastAt) >= interval {
		return false
	}

	latest, err := p.Snapshots.Latest(ctx)
	if err != nil || len(latest) != len(flat) {
		return false
	}
	for _, s := range latest {
		v, ok := flat[s.Path]
		if !ok || fmt.Sprintf("%v", v) != s.Value {
			return false
		}
	}
	return true
}
