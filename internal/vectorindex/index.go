// Package vectorindex implements a flat inner-product similarity index.
//
// The index holds an ordered sequence of dense float32 vectors. Positions
// are stable: a vector added at position i stays at position i for the
// lifetime of the index, and Set replaces a vector in place without moving
// any other entry. Callers maintain their own parallel metadata keyed by
// position.
//
// Search is exact brute-force inner product over all vectors. For the
// corpus sizes this service handles (hundreds to low thousands of
// documents) exact search is both simpler and faster to warm than an
// approximate structure.
package vectorindex

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrDimensionMismatch is returned when a vector's length differs from
	// the index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrPositionOutOfRange is returned by Set for an unknown position.
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrEmptyVector is returned when adding a nil or empty vector.
	ErrEmptyVector = errors.New("empty vector")
)

// Hit is a single search match: the position of the vector and its
// inner-product score against the query.
type Hit struct {
	Position int
	Score    float32
}

// Index is a flat, append-only (plus replace-in-place) inner-product index.
//
// A single writer lock guards appends and replacements. Readers snapshot
// the current count under RLock, so a search observes a consistent prefix
// even while adds proceed concurrently.
type Index struct {
	mu      sync.RWMutex
	dim     int
	vectors [][]float32
}

// New creates an index for vectors of the given dimension.
func New(dim int) (*Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dimension must be > 0, got %d", dim)
	}
	return &Index{dim: dim}, nil
}

// Dimension returns the fixed vector dimension.
func (ix *Index) Dimension() int {
	return ix.dim
}

// Count returns the number of vectors in the index.
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.vectors)
}

// Add appends a vector and returns its position.
func (ix *Index) Add(vector []float32) (int, error) {
	if len(vector) == 0 {
		return 0, ErrEmptyVector
	}
	if len(vector) != ix.dim {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vector), ix.dim)
	}

	// Copy so the caller cannot mutate stored state afterwards.
	v := make([]float32, len(vector))
	copy(v, vector)

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.vectors = append(ix.vectors, v)
	return len(ix.vectors) - 1, nil
}

// Set replaces the vector at an existing position. Used for upsert: a
// document re-added under the same id keeps its position, so parallel
// metadata stays aligned.
func (ix *Index) Set(position int, vector []float32) error {
	if len(vector) == 0 {
		return ErrEmptyVector
	}
	if len(vector) != ix.dim {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vector), ix.dim)
	}

	v := make([]float32, len(vector))
	copy(v, vector)

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if position < 0 || position >= len(ix.vectors) {
		return fmt.Errorf("%w: %d (count %d)", ErrPositionOutOfRange, position, len(ix.vectors))
	}
	ix.vectors[position] = v
	return nil
}

// Search returns up to min(k, Count()) hits ranked by descending
// inner-product score. Scoring is equivalent to cosine similarity when
// vectors are normalized at insertion and query time, which is the
// discipline the knowledge base follows.
func (ix *Index) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != ix.dim {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(query), ix.dim)
	}
	if k <= 0 {
		return nil, nil
	}

	// Hold the read lock for the whole scan so in-place replacements by
	// Set cannot interleave with scoring. Appends still only become
	// visible to searches that start after they complete.
	ix.mu.RLock()
	n := len(ix.vectors)
	if n == 0 {
		ix.mu.RUnlock()
		return nil, nil
	}

	hits := make([]Hit, n)
	for i := 0; i < n; i++ {
		hits[i] = Hit{Position: i, Score: dot(query, ix.vectors[i])}
	}
	ix.mu.RUnlock()

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// dot computes the inner product of two equal-length vectors.
func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
