package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mcosta/chesslog/internal/chesscom"
	"github.com/mcosta/chesslog/internal/logger"
	"github.com/mcosta/chesslog/internal/models"
	"github.com/mcosta/chesslog/internal/repository"
)

// ErrNoUsername is returned when a sync is attempted without a tracked
// username configured.
var ErrNoUsername = errors.New("no tracked username configured")

// Syncer runs one ingestion pass: list archives, fetch the ones that need
// fetching, merge new games into the dataset head, and record the run.
// Archive fetches are strictly sequential with an injectable delay between
// calls.
type Syncer struct {
	Client   chesscom.ClientInterface
	Games    repository.GameRepository
	Archives repository.ArchiveRepository
	Runs     repository.SyncRunRepository
	Username string
	Delay    Delayer
}

// Run executes one sync. With full set, every archive in the listing is
// re-fetched; otherwise only archives never fetched before plus the current
// (most recent) one. A failed archive-listing call aborts the run; a failed
// single-archive fetch is logged and skipped.
func (s *Syncer) Run(ctx context.Context, full bool) (*models.SyncRun, error) {
	if s.Username == "" {
		return nil, ErrNoUsername
	}
	delay := s.Delay
	if delay == nil {
		delay = NoDelay{}
	}

	log := logger.FromContext(ctx).WithField("username", s.Username)
	run := models.SyncRun{
		ID:        uuid.NewString(),
		Username:  s.Username,
		StartedAt: time.Now(),
	}
	log = log.WithField("run_id", run.ID)
	log.Info("starting sync")

	archives, err := s.Client.FetchArchives(ctx, s.Username)
	if err != nil {
		log.Error("failed to fetch archive listing: %v", err)
		return nil, err
	}
	run.ArchivesSeen = len(archives)

	refs := make([]models.ArchiveRef, len(archives))
	for i, url := range archives {
		refs[i] = models.ArchiveRef{
			URL:       url,
			YearMonth: chesscom.ArchiveYearMonth(url),
			Active:    i == len(archives)-1,
		}
	}
	if err := s.Archives.Upsert(ctx, refs); err != nil {
		return nil, err
	}

	toFetch := refs
	if !full {
		stored, err := s.Archives.List(ctx)
		if err != nil {
			return nil, err
		}
		fetchedAt := make(map[string]*time.Time, len(stored))
		for _, ref := range stored {
			fetchedAt[ref.URL] = ref.LastFetchedAt
		}
		toFetch = toFetch[:0]
		for _, ref := range refs {
			if ref.Active || fetchedAt[ref.URL] == nil {
				toFetch = append(toFetch, ref)
			}
		}
	}
	log.Info("fetching %d of %d archives", len(toFetch), len(archives))

	existing, err := s.Games.ExistingURLs(ctx)
	if err != nil {
		return nil, err
	}

	for i, ref := range toFetch {
		if i > 0 {
			delay.Wait(ctx)
		}
		if err := ctx.Err(); err != nil {
			log.Warn("sync cancelled: %v", err)
			return nil, err
		}

		batch, err := s.Client.FetchMonthly(ctx, ref.URL)
		if err != nil {
			// One bad archive must not abort the run.
			log.Error("failed to fetch archive %s, skipping: %v", ref.URL, err)
			run.ArchivesFailed++
			continue
		}
		run.ArchivesFetched++

		rows := MergeNewGames(batch, existing, s.Username)
		if len(rows) > 0 {
			if err := s.Games.InsertAt(ctx, 0, rows); err != nil {
				log.Error("failed to insert games from %s: %v", ref.URL, err)
				return nil, err
			}
			run.NewGames += len(rows)
		}
		log.Debug("archive %s: %d fetched, %d new", ref.URL, len(batch), len(rows))

		if err := s.Archives.MarkFetched(ctx, ref.URL, time.Now()); err != nil {
			log.Warn("failed to mark archive fetched: %v", err)
		}
	}

	finished := time.Now()
	run.FinishedAt = &finished
	if err := s.Runs.Insert(ctx, run); err != nil {
		log.Warn("failed to record sync run: %v", err)
	}

	log.Info("sync finished: %d new games, %d archives failed", run.NewGames, run.ArchivesFailed)
	return &run, nil
}
