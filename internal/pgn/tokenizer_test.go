package pgn_test

import (
	"testing"

	"github.com/mcosta/chesslog/internal/pgn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeMoves_MovesWithClocks(t *testing.T) {
	entries := pgn.TokenizeMoves("1. e4 {[%clk 0:03:00]} 1... e5 {[%clk 0:02:58]} 2. Nf3")

	require.Len(t, entries, 2)
	assert.Equal(t, "1. e4 1... e5", entries[0].SANText)
	assert.Equal(t, "0:03:00 0:02:58", entries[0].ClockTimes)
	assert.Equal(t, "2. Nf3", entries[1].SANText)
	assert.Empty(t, entries[1].ClockTimes)
}

func TestTokenizeMoves_Empty(t *testing.T) {
	assert.Empty(t, pgn.TokenizeMoves(""))
	assert.Empty(t, pgn.TokenizeMoves("   "))
}

func TestTokenizeMoves_NoClocks(t *testing.T) {
	entries := pgn.TokenizeMoves("1. e4 e5 2. Nf3 Nc6 3. Bb5")

	require.Len(t, entries, 3)
	assert.Equal(t, "1. e4 e5", entries[0].SANText)
	assert.Equal(t, "2. Nf3 Nc6", entries[1].SANText)
	assert.Equal(t, "3. Bb5", entries[2].SANText)
}

func TestTokenizeMoves_UnknownAnnotationsDropped(t *testing.T) {
	entries := pgn.TokenizeMoves("1. e4 {[%eval 0.3]} e5 {[%clk 0:09:58]}")

	require.Len(t, entries, 1)
	assert.Equal(t, "1. e4 e5", entries[0].SANText)
	assert.Equal(t, "0:09:58", entries[0].ClockTimes)
}

func TestTokenizeMoves_ResultTokenStaysWithLastMove(t *testing.T) {
	entries := pgn.TokenizeMoves("1. e4 e5 2. Qh5 Nc6 3. Qxf7# 1-0")

	require.Len(t, entries, 3)
	assert.Equal(t, "3. Qxf7# 1-0", entries[2].SANText)
}

func TestTokenizeMoves_UnterminatedAnnotation(t *testing.T) {
	assert.NotPanics(t, func() {
		entries := pgn.TokenizeMoves("1. e4 {[%clk 0:03:00")
		require.Len(t, entries, 1)
		assert.Equal(t, "1. e4", entries[0].SANText)
	})
}
