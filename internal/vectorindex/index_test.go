package vectorindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("creates index with valid dimension", func(t *testing.T) {
		ix, err := New(3)
		require.NoError(t, err)
		assert.Equal(t, 3, ix.Dimension())
		assert.Equal(t, 0, ix.Count())
	})

	t.Run("rejects non-positive dimension", func(t *testing.T) {
		_, err := New(0)
		assert.Error(t, err)

		_, err = New(-4)
		assert.Error(t, err)
	})
}

func TestAdd(t *testing.T) {
	t.Run("returns sequential positions", func(t *testing.T) {
		ix, err := New(2)
		require.NoError(t, err)

		pos, err := ix.Add([]float32{1, 0})
		require.NoError(t, err)
		assert.Equal(t, 0, pos)

		pos, err = ix.Add([]float32{0, 1})
		require.NoError(t, err)
		assert.Equal(t, 1, pos)
		assert.Equal(t, 2, ix.Count())
	})

	t.Run("rejects dimension mismatch", func(t *testing.T) {
		ix, err := New(3)
		require.NoError(t, err)

		_, err = ix.Add([]float32{1, 0})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
		assert.Equal(t, 0, ix.Count())
	})

	t.Run("rejects empty vector", func(t *testing.T) {
		ix, err := New(3)
		require.NoError(t, err)

		_, err = ix.Add(nil)
		assert.ErrorIs(t, err, ErrEmptyVector)
	})

	t.Run("copies the input vector", func(t *testing.T) {
		ix, err := New(2)
		require.NoError(t, err)

		v := []float32{1, 0}
		_, err = ix.Add(v)
		require.NoError(t, err)

		// Mutating the caller's slice must not affect stored state.
		v[0] = 0
		v[1] = 1

		hits, err := ix.Search([]float32{1, 0}, 1)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
	})
}

func TestSet(t *testing.T) {
	t.Run("replaces vector in place", func(t *testing.T) {
		ix, err := New(2)
		require.NoError(t, err)

		pos, err := ix.Add([]float32{1, 0})
		require.NoError(t, err)

		require.NoError(t, ix.Set(pos, []float32{0, 1}))
		assert.Equal(t, 1, ix.Count())

		hits, err := ix.Search([]float32{0, 1}, 1)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, pos, hits[0].Position)
		assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
	})

	t.Run("rejects unknown position", func(t *testing.T) {
		ix, err := New(2)
		require.NoError(t, err)

		err = ix.Set(0, []float32{1, 0})
		assert.ErrorIs(t, err, ErrPositionOutOfRange)

		err = ix.Set(-1, []float32{1, 0})
		assert.ErrorIs(t, err, ErrPositionOutOfRange)
	})

	t.Run("rejects dimension mismatch", func(t *testing.T) {
		ix, err := New(2)
		require.NoError(t, err)
		_, err = ix.Add([]float32{1, 0})
		require.NoError(t, err)

		err = ix.Set(0, []float32{1, 0, 0})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}

func TestSearch(t *testing.T) {
	t.Run("ranks by descending score", func(t *testing.T) {
		ix, err := New(2)
		require.NoError(t, err)

		// Three unit vectors at increasing angles from the query.
		_, err = ix.Add([]float32{0, 1})
		require.NoError(t, err)
		_, err = ix.Add([]float32{1, 0})
		require.NoError(t, err)
		_, err = ix.Add([]float32{0.7071, 0.7071})
		require.NoError(t, err)

		hits, err := ix.Search([]float32{1, 0}, 3)
		require.NoError(t, err)
		require.Len(t, hits, 3)
		assert.Equal(t, 1, hits[0].Position)
		assert.Equal(t, 2, hits[1].Position)
		assert.Equal(t, 0, hits[2].Position)
		assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)
		assert.GreaterOrEqual(t, hits[1].Score, hits[2].Score)
	})

	t.Run("caps results at k", func(t *testing.T) {
		ix, err := New(2)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			_, err = ix.Add([]float32{1, float32(i)})
			require.NoError(t, err)
		}

		hits, err := ix.Search([]float32{1, 0}, 2)
		require.NoError(t, err)
		assert.Len(t, hits, 2)
	})

	t.Run("returns nil on empty index", func(t *testing.T) {
		ix, err := New(2)
		require.NoError(t, err)

		hits, err := ix.Search([]float32{1, 0}, 5)
		require.NoError(t, err)
		assert.Nil(t, hits)
	})

	t.Run("returns nil for non-positive k", func(t *testing.T) {
		ix, err := New(2)
		require.NoError(t, err)
		_, err = ix.Add([]float32{1, 0})
		require.NoError(t, err)

		hits, err := ix.Search([]float32{1, 0}, 0)
		require.NoError(t, err)
		assert.Nil(t, hits)
	})

	t.Run("rejects query dimension mismatch", func(t *testing.T) {
		ix, err := New(2)
		require.NoError(t, err)

		_, err = ix.Search([]float32{1, 0, 0}, 1)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}
