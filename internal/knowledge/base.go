// Package knowledge composes the embedding encoder, the vector index and
// the durable document store into the farm knowledge base.
//
// The base follows a strict soft-failure contract: once constructed it
// never panics or returns errors across its public surface. When the
// encoder or the store is unavailable the base runs disabled — adds
// report failure and searches return no results — so callers above it can
// keep operating in a degraded, web-only mode.
package knowledge

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/haritlabs/agrod/internal/docstore"
	"github.com/haritlabs/agrod/internal/logging"
	"github.com/haritlabs/agrod/internal/vectorindex"
)

// Config holds knowledge base settings.
type Config struct {
	// DatabasePath is the SQLite file backing the document store.
	DatabasePath string
}

// docMeta is the in-memory metadata entry parallel to index positions.
type docMeta struct {
	id        string
	metadata  map[string]any
	source    string
	category  Category
	timestamp time.Time
}

// Base is the knowledge base: encoder + vector index + document store.
type Base struct {
	logger   *logging.Logger
	embedder Embedder
	store    *docstore.Store
	index    *vectorindex.Index

	// mu guards meta, positions and the paired index mutation so that
	// "append embedding + append metadata" stays atomic and position i in
	// the index always resolves to meta[i].
	mu        sync.RWMutex
	meta      []docMeta
	positions map[string]int

	disabled bool
}

// New constructs the knowledge base and replays the document store to
// rebuild the vector index.
//
// Construction never fails: a nil embedder or an unreachable store leaves
// the base in disabled mode with the cause logged, mirroring the guarded
// initialization the conversational surface above depends on.
func New(ctx context.Context, cfg Config, embedder Embedder, logger *logging.Logger) *Base {
	b := &Base{
		logger:    logger.Named("knowledge"),
		embedder:  embedder,
		positions: make(map[string]int),
	}

	if embedder == nil || embedder.Dimension() <= 0 {
		b.logger.Error(ctx, "embedding encoder unavailable, knowledge base disabled")
		b.disabled = true
		return b
	}

	index, err := vectorindex.New(embedder.Dimension())
	if err != nil {
		b.logger.Error(ctx, "failed to create vector index, knowledge base disabled", zap.Error(err))
		b.disabled = true
		return b
	}
	b.index = index

	store, err := docstore.Open(cfg.DatabasePath)
	if err != nil {
		b.logger.Error(ctx, "failed to open document store, knowledge base disabled",
			zap.String("path", cfg.DatabasePath), zap.Error(err))
		b.disabled = true
		return b
	}
	b.store = store

	b.replay(ctx)
	return b
}

// replay rebuilds the index and metadata list from the store in its
// iteration order. Malformed records are logged and skipped.
func (b *Base) replay(ctx context.Context) {
	records, skipped, err := b.store.All(ctx)
	if err != nil {
		b.logger.Error(ctx, "failed to load stored documents, starting empty", zap.Error(err))
		return
	}
	for _, sk := range skipped {
		b.logger.Warn(ctx, "skipping undecodable document",
			zap.String("document_id", sk.ID), zap.Error(sk.Err))
	}

	loaded := 0
	for _, rec := range records {
		if len(rec.Embedding) == 0 {
			b.logger.Warn(ctx, "skipping document without embedding", zap.String("document_id", rec.ID))
			continue
		}
		pos, err := b.index.Add(rec.Embedding)
		if err != nil {
			b.logger.Warn(ctx, "skipping document with unusable embedding",
				zap.String("document_id", rec.ID), zap.Error(err))
			continue
		}
		b.meta = append(b.meta, docMeta{
			id:        rec.ID,
			metadata:  rec.Metadata,
			source:    rec.Source,
			category:  Category(rec.Category),
			timestamp: rec.Timestamp,
		})
		b.positions[rec.ID] = pos
		loaded++
	}

	if loaded > 0 {
		b.logger.Info(ctx, "loaded documents into knowledge base", zap.Int("count", loaded))
	}
}

// Disabled reports whether the base is running in degraded mode.
func (b *Base) Disabled() bool {
	return b.disabled
}

// Count returns the number of indexed documents.
func (b *Base) Count() int {
	if b.disabled {
		return 0
	}
	return b.index.Count()
}

// AddDocument encodes, persists and indexes a document. It reports false
// on any failure (encoder unavailable, store write failure, dimension
// mismatch) with the cause logged, and guarantees a failed store write
// leaves the index untouched.
//
// Re-adding an existing id replaces both the stored row and the indexed
// vector in place, so stale duplicates never surface in searches.
func (b *Base) AddDocument(ctx context.Context, doc Document) bool {
	if b.disabled {
		b.logger.Warn(ctx, "add rejected, knowledge base disabled", zap.String("document_id", doc.ID))
		return false
	}
	if doc.ID == "" || doc.Content == "" {
		b.logger.Warn(ctx, "add rejected, document needs id and content", zap.String("document_id", doc.ID))
		return false
	}

	embedding := doc.Embedding
	if len(embedding) == 0 {
		vectors, err := b.embedder.EmbedDocuments(ctx, []string{doc.Content})
		if err != nil || len(vectors) == 0 {
			b.logger.Error(ctx, "failed to encode document",
				zap.String("document_id", doc.ID), zap.Error(err))
			documentsAdded.WithLabelValues("error").Inc()
			return false
		}
		embedding = vectors[0]
	}
	if len(embedding) != b.index.Dimension() {
		b.logger.Error(ctx, "rejecting document with mismatched embedding dimension",
			zap.String("document_id", doc.ID),
			zap.Int("got", len(embedding)), zap.Int("want", b.index.Dimension()))
		documentsAdded.WithLabelValues("error").Inc()
		return false
	}
	embedding = normalize(embedding)

	ts := doc.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	// Store first: if the durable write fails, the index must not have
	// been mutated, so subsequent searches cannot observe a phantom.
	err := b.store.Put(ctx, docstore.Record{
		ID:        doc.ID,
		Content:   doc.Content,
		Metadata:  doc.Metadata,
		Embedding: embedding,
		Timestamp: ts,
		Source:    doc.Source,
		Category:  string(doc.Category),
	})
	if err != nil {
		b.logger.Error(ctx, "failed to persist document",
			zap.String("document_id", doc.ID), zap.Error(err))
		documentsAdded.WithLabelValues("error").Inc()
		return false
	}

	meta := docMeta{
		id:        doc.ID,
		metadata:  doc.Metadata,
		source:    doc.Source,
		category:  doc.Category,
		timestamp: ts,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if pos, exists := b.positions[doc.ID]; exists {
		if err := b.index.Set(pos, embedding); err != nil {
			b.logger.Error(ctx, "failed to replace indexed vector",
				zap.String("document_id", doc.ID), zap.Error(err))
			documentsAdded.WithLabelValues("error").Inc()
			return false
		}
		b.meta[pos] = meta
	} else {
		pos, err := b.index.Add(embedding)
		if err != nil {
			b.logger.Error(ctx, "failed to index document",
				zap.String("document_id", doc.ID), zap.Error(err))
			documentsAdded.WithLabelValues("error").Inc()
			return false
		}
		b.meta = append(b.meta, meta)
		b.positions[doc.ID] = pos
	}

	documentsAdded.WithLabelValues("success").Inc()
	documentsIndexed.Set(float64(b.index.Count()))
	b.logger.Debug(ctx, "added document", zap.String("document_id", doc.ID), zap.String("source", doc.Source))
	return true
}

// SearchSimilar returns up to k documents ranked by descending similarity
// to the query. An empty or disabled base returns an empty result, never
// an error.
func (b *Base) SearchSimilar(ctx context.Context, query string, k int) []SearchResult {
	if b.disabled || b.index.Count() == 0 {
		return nil
	}
	if k <= 0 {
		k = 5
	}

	queryVec, err := b.embedder.EmbedQuery(ctx, query)
	if err != nil {
		b.logger.Error(ctx, "failed to encode query", zap.Error(err))
		searches.WithLabelValues("error").Inc()
		return nil
	}

	hits, err := b.index.Search(normalize(queryVec), k)
	if err != nil {
		b.logger.Error(ctx, "vector search failed", zap.Error(err))
		searches.WithLabelValues("error").Inc()
		return nil
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		if hit.Position >= len(b.meta) {
			// A hit against a vector whose metadata append has not been
			// observed yet; skip rather than misattribute.
			continue
		}
		m := b.meta[hit.Position]
		results = append(results, SearchResult{
			DocumentID:      m.id,
			SimilarityScore: hit.Score,
			Metadata:        m.metadata,
			Source:          m.source,
			Category:        m.category,
			Timestamp:       m.timestamp,
		})
	}

	searches.WithLabelValues("success").Inc()
	return results
}

// GetDocumentContent returns the full content of a document by id.
func (b *Base) GetDocumentContent(ctx context.Context, id string) (string, bool) {
	if b.disabled {
		return "", false
	}
	rec, err := b.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, docstore.ErrNotFound) {
			b.logger.Error(ctx, "failed to read document", zap.String("document_id", id), zap.Error(err))
		}
		return "", false
	}
	return rec.Content, true
}

// Close releases the underlying document store.
func (b *Base) Close() error {
	if b.store == nil {
		return nil
	}
	return b.store.Close()
}

// normalize scales a vector to unit length. Inner product over unit
// vectors equals cosine similarity; insertion and query encoding both go
// through here so the two sides stay consistent.
func normalize(vec []float32) []float32 {
	var sumSq float64
	for _, f := range vec {
		sumSq += float64(f) * float64(f)
	}
	if sumSq == 0 {
		return vec
	}
	norm := float32(1.0 / math.Sqrt(sumSq))
	out := make([]float32, len(vec))
	for i, f := range vec {
		out[i] = f * norm
	}
	return out
}
