package database_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/homelibrary/internal/database"
)

func TestChunkIDs(t *testing.T) {
	tests := []struct {
		name string
		ids  []int64
		size int
		want [][]int64
	}{
		{"empty", nil, 2, [][]int64{}},
		{"fits in one", []int64{1, 2}, 2, [][]int64{{1, 2}}},
		{"remainder", []int64{1, 2, 3, 4, 5}, 2, [][]int64{{1, 2}, {3, 4}, {5}}},
		{"non-positive size uses the default", []int64{1, 2, 3}, 0, [][]int64{{1, 2, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, database.ChunkIDs(tt.ids, tt.size))
		})
	}
}

func TestChunkIDs_StaysUnderSQLiteVariableLimit(t *testing.T) {
	ids := make([]int64, 40000)
	for i := range ids {
		ids[i] = int64(i + 1)
	}

	chunks := database.ChunkIDs(ids, database.MaxQueryIDs)
	total := 0
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), database.MaxQueryIDs)
		total += len(chunk)
	}
	assert.Equal(t, len(ids), total)
}

func TestQueryInChunks(t *testing.T) {
	var calls [][]int64
	rows, err := database.QueryInChunks([]int64{1, 2, 3}, 2, func(chunk []int64) ([]string, error) {
		calls = append(calls, chunk)
		out := make([]string, len(chunk))
		for i, id := range chunk {
			out[i] = string(rune('a' + id - 1))
		}
		return out, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, rows)
	assert.Equal(t, [][]int64{{1, 2}, {3}}, calls)

	t.Run("stops at the first error", func(t *testing.T) {
		boom := errors.New("boom")
		called := 0
		rows, err := database.QueryInChunks([]int64{1, 2, 3}, 1, func(chunk []int64) ([]int, error) {
			called++
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, rows)
		assert.Equal(t, 1, called)
	})
}
