package embeddings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTEI(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewService(Config{BaseURL: srv.URL, Model: "test-model"})
	require.NoError(t, err)
	return svc
}

func TestNewService(t *testing.T) {
	t.Run("requires base url", func(t *testing.T) {
		_, err := NewService(Config{})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestEmbedDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("posts texts and decodes vectors", func(t *testing.T) {
		svc := newTestTEI(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/embed", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req teiRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.True(t, req.Truncate)

			json.NewEncoder(w).Encode([][]float32{{0.1, 0.2}, {0.3, 0.4}})
		})

		vectors, err := svc.EmbedDocuments(ctx, []string{"first", "second"})
		require.NoError(t, err)
		require.Len(t, vectors, 2)
		assert.Equal(t, []float32{0.1, 0.2}, vectors[0])
	})

	t.Run("sends bearer token when configured", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode([][]float32{{0.1}})
		}))
		defer srv.Close()

		svc, err := NewService(Config{BaseURL: srv.URL, APIKey: "key123"})
		require.NoError(t, err)

		_, err = svc.EmbedDocuments(ctx, []string{"text"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer key123", gotAuth)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		svc := newTestTEI(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("must not be called")
		})

		_, err := svc.EmbedDocuments(ctx, nil)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("surfaces provider errors", func(t *testing.T) {
		svc := newTestTEI(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model overloaded", http.StatusServiceUnavailable)
		})

		_, err := svc.EmbedDocuments(ctx, []string{"text"})
		assert.ErrorIs(t, err, ErrEmbeddingFailed)
		assert.Contains(t, err.Error(), "model overloaded")
	})
}

func TestEmbedQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the single query vector", func(t *testing.T) {
		svc := newTestTEI(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([][]float32{{0.5, 0.6}})
		})

		vec, err := svc.EmbedQuery(ctx, "wheat sowing")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.5, 0.6}, vec)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		svc := newTestTEI(t, func(w http.ResponseWriter, r *http.Request) {})
		_, err := svc.EmbedQuery(ctx, "")
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("empty response is an error", func(t *testing.T) {
		svc := newTestTEI(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([][]float32{})
		})

		_, err := svc.EmbedQuery(ctx, "wheat")
		assert.ErrorIs(t, err, ErrEmbeddingFailed)
	})
}

func TestProviderFactory(t *testing.T) {
	t.Run("tei provider reports model dimension", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer srv.Close()

		provider, err := NewProvider(ProviderConfig{
			Provider: "tei",
			Model:    "sentence-transformers/all-MiniLM-L6-v2",
			BaseURL:  srv.URL,
		})
		require.NoError(t, err)
		assert.Equal(t, 384, provider.Dimension())
		assert.NoError(t, provider.Close())
	})

	t.Run("unknown provider is rejected", func(t *testing.T) {
		_, err := NewProvider(ProviderConfig{Provider: "openai"})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestDetectDimensionFromModel(t *testing.T) {
	cases := []struct {
		model string
		want  int
	}{
		{"sentence-transformers/all-MiniLM-L6-v2", 384},
		{"BAAI/bge-base-en-v1.5", 768},
		{"BAAI/bge-large-en-v1.5", 1024},
		{"totally-unknown-model", 384},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, detectDimensionFromModel(tc.model), "model: %s", tc.model)
	}
}
