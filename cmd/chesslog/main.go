package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcosta/chesslog/internal/api"
	"github.com/mcosta/chesslog/internal/chesscom"
	"github.com/mcosta/chesslog/internal/config"
	"github.com/mcosta/chesslog/internal/db"
	"github.com/mcosta/chesslog/internal/ingest"
	"github.com/mcosta/chesslog/internal/logger"
	"github.com/mcosta/chesslog/internal/models"
	"github.com/mcosta/chesslog/internal/repository"
	"github.com/mcosta/chesslog/internal/repository/sqlite"
	"github.com/mcosta/chesslog/internal/services"
	"github.com/mcosta/chesslog/internal/stats"
	"github.com/mcosta/chesslog/internal/worker"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chesslog",
	Short: "Track a chess.com player's game history and statistics",
}

var (
	fullSync bool
	asOfDate string
)

func init() {
	syncCmd.Flags().BoolVar(&fullSync, "full", false, "re-fetch every archive, not just new and current ones")
	statsAsOfCmd.Flags().StringVar(&asOfDate, "date", "", "cutoff date (YYYY-MM-DD), default today")
	statsCmd.AddCommand(statsDailyCmd, statsAsOfCmd)
	rootCmd.AddCommand(syncCmd, pullStatsCmd, statsCmd, serveCmd)
}

// app holds everything a command needs. Callers must defer Close.
type app struct {
	cfg       config.Config
	db        *db.DB
	client    *chesscom.Client
	games     repository.GameRepository
	archives  repository.ArchiveRepository
	runs      repository.SyncRunRepository
	snapshots repository.StatSnapshotRepository
}

func newApp() (*app, error) {
	cfg := config.Load()

	logger.SetDefault(logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	))

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &app{
		cfg:       cfg,
		db:        database,
		client:    chesscom.New(cfg.HTTPTimeout),
		games:     sqlite.NewGameRepository(database.DB),
		archives:  sqlite.NewArchiveRepository(database.DB),
		runs:      sqlite.NewSyncRunRepository(database.DB),
		snapshots: sqlite.NewStatSnapshotRepository(database.DB),
	}, nil
}

func (a *app) Close() {
	_ = a.db.Close()
}

func (a *app) syncer() *ingest.Syncer {
	return &ingest.Syncer{
		Client:   a.client,
		Games:    a.games,
		Archives: a.archives,
		Runs:     a.runs,
		Username: a.cfg.Username,
		Delay:    ingest.NewSleepDelayer(a.cfg.FetchDelay),
	}
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch new games from chess.com into the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		run, err := a.syncer().Run(cmd.Context(), fullSync)
		if err != nil {
			return err
		}
		fmt.Printf("Synced %d new games (%d/%d archives fetched, %d failed)\n",
			run.NewGames, run.ArchivesFetched, run.ArchivesSeen, run.ArchivesFailed)
		return nil
	},
}

var pullStatsCmd = &cobra.Command{
	Use:   "pull-stats",
	Short: "Record a snapshot of the player's chess.com rating statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		puller := &ingest.StatsPuller{
			Client:               a.client,
			Snapshots:            a.snapshots,
			Username:             a.cfg.Username,
			ZeroDeltaMinInterval: a.cfg.ZeroDeltaMinInterval,
		}
		n, err := puller.Pull(cmd.Context())
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("Stats unchanged, snapshot suppressed")
		} else {
			fmt.Printf("Recorded %d stat rows\n", n)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Derive statistics from the local dataset",
}

var statsDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Print the day-by-day win/loss/rating series",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		rows, err := a.games.ReadAll(cmd.Context())
		if err != nil {
			return err
		}
		series := stats.ComputeDailySeries(stats.BuildEvents(rows), time.Now())
		if len(series) == 0 {
			fmt.Println("No games to aggregate")
			return nil
		}
		for _, day := range series {
			for _, cat := range models.Categories {
				s := day.Categories[cat]
				if s.GamesToday == 0 {
					continue
				}
				fmt.Printf("%s  %-9s rating=%d (%+d) score=%s winpct=%.0f%%\n",
					day.Date.Format("2006-01-02"), cat,
					s.EndOfDayRating, s.RatingChange, s.Score, s.WinPct*100)
			}
		}
		return nil
	},
}

var statsAsOfCmd = &cobra.Command{
	Use:   "asof",
	Short: "Print cumulative per-category totals as of a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		cutoff := time.Now()
		if asOfDate != "" {
			parsed, err := time.ParseInLocation("2006-01-02", asOfDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", asOfDate)
			}
			cutoff = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}

		rows, err := a.games.ReadAll(cmd.Context())
		if err != nil {
			return err
		}
		totals := stats.ComputeAsOf(stats.BuildEvents(rows), cutoff)

		cats := make([]string, 0, len(totals))
		for cat := range totals {
			cats = append(cats, cat)
		}
		sort.Strings(cats)
		for _, cat := range cats {
			t := totals[cat]
			fmt.Printf("%-9s rating=%d games=%d W/L/D=%d/%d/%d\n",
				cat, t.Rating, t.Games, t.Wins, t.Losses, t.Draws)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dataset and statistics over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		log := logger.Default()

		pool := worker.NewPool(a.cfg.SyncWorkerCount, a.cfg.SyncQueueSize)
		srv := &api.Server{
			GameService:  services.NewGameService(a.games),
			StatsService: services.NewStatsService(a.games, a.snapshots),
			SyncService:  services.NewSyncService(a.syncer(), pool, a.runs),
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		pool.Start(ctx)

		httpServer := &http.Server{
			Addr:         a.cfg.Addr,
			Handler:      srv.Routes(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			log.Info("HTTP server listening on %s", a.cfg.Addr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("HTTP server error: %v", err)
				os.Exit(1)
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		sig := <-stop
		log.Info("received signal %v, shutting down", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error: %v", err)
		}

		cancel()
		pool.Stop()
		return nil
	},
}
