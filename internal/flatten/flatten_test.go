package flatten_test

import (
	"encoding/json"
	"testing"

	"github.com/mcosta/chesslog/internal/flatten"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_NestedObjects(t *testing.T) {
	var v any
	err := json.Unmarshal([]byte(`{
		"chess_blitz": {
			"last": {"rating": 1498, "date": 1709293600},
			"record": {"win": 10, "loss": 8, "draw": 2}
		}
	}`), &v)
	require.NoError(t, err)

	flat := flatten.Flatten(v)

	assert.Equal(t, float64(1498), flat["chess_blitz.last.rating"])
	assert.Equal(t, float64(10), flat["chess_blitz.record.win"])
	assert.Len(t, flat, 5)
}

func TestFlatten_Arrays(t *testing.T) {
	var v any
	err := json.Unmarshal([]byte(`{"best": [{"rating": 1600}, {"rating": 1580}]}`), &v)
	require.NoError(t, err)

	flat := flatten.Flatten(v)

	assert.Equal(t, float64(1600), flat["best.0.rating"])
	assert.Equal(t, float64(1580), flat["best.1.rating"])
}

func TestFlatten_ScalarAndNull(t *testing.T) {
	flat := flatten.Flatten("hello")
	assert.Equal(t, map[string]any{"": "hello"}, flat)

	flat = flatten.Flatten(nil)
	assert.Equal(t, map[string]any{"": nil}, flat)
}

func TestFlatten_EmptyContainers(t *testing.T) {
	assert.Empty(t, flatten.Flatten(map[string]any{}))
	assert.Empty(t, flatten.Flatten([]any{}))
}

func TestPaths_Sorted(t *testing.T) {
	flat := map[string]any{"b.1": 1, "a": 2, "b.0": 3}
	assert.Equal(t, []string{"a", "b.0", "b.1"}, flatten.Paths(flat))
}
