package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:chesslog.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.FetchDelay)
	assert.Equal(t, 1, cfg.SyncWorkerCount)
	assert.Equal(t, 8, cfg.SyncQueueSize)
	assert.Equal(t, DefaultZeroDeltaMinInterval, cfg.ZeroDeltaMinInterval)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("CHESSLOG_USERNAME", "alice")
	t.Setenv("ADDR", ":9090")
	t.Setenv("FETCH_DELAY", "2s")
	t.Setenv("SYNC_WORKER_COUNT", "4")

	cfg := Load()

	assert.Equal(t, "alice", cfg.Username)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 2*time.Second, cfg.FetchDelay)
	assert.Equal(t, 4, cfg.SyncWorkerCount)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SYNC_WORKER_COUNT", "lots")
	t.Setenv("HTTP_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 1, cfg.SyncWorkerCount)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}
