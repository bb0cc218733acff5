package chesscom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mcosta/chesslog/internal/logger"
)

const baseURL = "https://api.chess.com/pub"

// ArchiveListError is returned when the archive listing request fails.
// Without a listing there is nothing to ingest, so callers treat it as fatal.
type ArchiveListError struct {
	Username   string
	StatusCode int // 0 on transport failure
	Err        error
}

func (e *ArchiveListError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("archive listing for %s: status %d", e.Username, e.StatusCode)
	}
	return fmt.Sprintf("archive listing for %s: %v", e.Username, e.Err)
}

func (e *ArchiveListError) Unwrap() error { return e.Err }

// Player is one side of a fetched game.
type Player struct {
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Result   string `json:"result"`
}

// Accuracies is the optional per-side engine accuracy pair.
type Accuracies struct {
	White float64 `json:"white"`
	Black float64 `json:"black"`
}

// RawGame is one game as returned by the monthly archive endpoint. Fields
// missing from the response decode to zero values; nothing here is trusted
// to be present.
type RawGame struct {
	URL         string      `json:"url"`
	PGN         string      `json:"pgn"`
	TimeControl string      `json:"time_control"`
	TimeClass   string      `json:"time_class"`
	Rules       string      `json:"rules"`
	Rated       bool        `json:"rated"`
	ECOURL      string      `json:"eco"`
	EndTime     int64       `json:"end_time"`
	White       Player      `json:"white"`
	Black       Player      `json:"black"`
	Accuracies  *Accuracies `json:"accuracies"`
}

type Client struct {
	httpClient *http.Client
	log        *logger.Logger
}

// New creates a Client. A zero timeout falls back to 30s.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Default().WithPrefix("chesscom"),
	}
}

type archivesResp struct {
	Archives []string `json:"archives"`
}

// FetchArchives lists the player's monthly archive URLs, oldest first.
// A missing archives array decodes to an empty list, which is not an error.
func (c *Client) FetchArchives(ctx context.Context, username string) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("username", username)
	url := fmt.Sprintf("%s/player/%s/games/archives", baseURL, username)

	log.Debug("fetching archives from: %s", url)
	start := time.Now()

	body, status, err := c.get(ctx, url)
	if err != nil {
		log.Error("failed to fetch archives: %v", err)
		return nil, &ArchiveListError{Username: username, Err: err}
	}
	log.Debug("archives response received in %v, status=%d", time.Since(start), status)
	if status != http.StatusOK {
		log.Error("archives request failed: status=%d", status)
		return nil, &ArchiveListError{Username: username, StatusCode: status}
	}

	var out archivesResp
	if err := json.Unmarshal(body, &out); err != nil {
		log.Error("failed to decode archives response: %v", err)
		return nil, &ArchiveListError{Username: username, Err: err}
	}

	log.Info("fetched %d archives for user %s", len(out.Archives), username)
	return out.Archives, nil
}

// FetchMonthly fetches all games in one monthly archive.
func (c *Client) FetchMonthly(ctx context.Context, archiveURL string) ([]RawGame, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("archive_url", archiveURL)

	log.Debug("fetching monthly games")
	start := time.Now()

	body, status, err := c.get(ctx, archiveURL)
	if err != nil {
		log.Error("failed to fetch monthly games: %v", err)
		return nil, err
	}
	log.Debug("monthly response received in %v, status=%d", time.Since(start), status)
	if status != http.StatusOK {
		log.Error("monthly request failed: status=%d", status)
		return nil, fmt.Errorf("monthly archive %s: status %d", archiveURL, status)
	}

	var payload struct {
		Games []RawGame `json:"games"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Error("failed to decode monthly response: %v", err)
		return nil, err
	}

	log.Info("fetched %d games from archive", len(payload.Games))
	return payload.Games, nil
}

// FetchPlayerStats fetches the player's rating/record statistics as raw
// nested JSON; the caller flattens it.
func (c *Client) FetchPlayerStats(ctx context.Context, username string) (map[string]any, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("username", username)
	url := fmt.Sprintf("%s/player/%s/stats", baseURL, username)

	log.Debug("fetching player stats")
	body, status, err := c.get(ctx, url)
	if err != nil {
		log.Error("failed to fetch player stats: %v", err)
		return nil, err
	}
	if status != http.StatusOK {
		log.Error("player stats request failed: status=%d", status)
		return nil, fmt.Errorf("player stats for %s: status %d", username, status)
	}

	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		log.Error("failed to decode player stats: %v", err)
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
