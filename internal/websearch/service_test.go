package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritlabs/agrod/internal/logging"
)

const resultPage = `<html><body>
<div class="result">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.org%2Fwheat&amp;rut=abc">Wheat prices in Punjab mandis</a>
  <div class="result__snippet">Current wheat price and farming market trends for Punjab agriculture.</div>
</div>
<div class="result">
  <a class="result__a" href="https://example.org/generic">Generic news page</a>
  <div class="result__snippet">A page about unrelated city events.</div>
</div>
<div class="result">
  <a class="result__a" href=""></a>
  <div class="result__snippet">Nameless result that must be skipped.</div>
</div>
</body></html>`

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(Config{BaseURL: srv.URL, MaxResults: 10}, logging.NewTestLogger().Logger)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("parses, scores and ranks results", func(t *testing.T) {
		var gotQuery string
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			w.Write([]byte(resultPage))
		})

		res := svc.Search(ctx, "wheat price", 5)
		require.True(t, res.Success)
		assert.Equal(t, "wheat price", res.Query)

		// The outgoing query carries the domain suffix.
		assert.Equal(t, "wheat price farming agriculture india", gotQuery)

		// Untitled results are skipped; the relevant hit ranks first.
		require.Len(t, res.Hits, 2)
		assert.Equal(t, "Wheat prices in Punjab mandis", res.Hits[0].Title)
		assert.Greater(t, res.Hits[0].RelevanceScore, res.Hits[1].RelevanceScore)

		// Redirect links are unwrapped to the destination URL.
		assert.Equal(t, "https://example.org/wheat", res.Hits[0].URL)
		assert.Equal(t, "https://example.org/generic", res.Hits[1].URL)
	})

	t.Run("caps hits at maxResults", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(resultPage))
		})

		res := svc.Search(ctx, "wheat", 1)
		require.True(t, res.Success)
		assert.Len(t, res.Hits, 1)
	})

	t.Run("empty result page is a failure", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html><body></body></html>`))
		})

		res := svc.Search(ctx, "wheat", 5)
		assert.False(t, res.Success)
		assert.Empty(t, res.Hits)
		assert.Contains(t, res.Error, "no search results")
	})

	t.Run("provider error status is a failure", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		res := svc.Search(ctx, "wheat", 5)
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.Error)
	})

	t.Run("unreachable provider is a failure", func(t *testing.T) {
		svc := NewService(Config{BaseURL: "http://127.0.0.1:1"}, logging.NewTestLogger().Logger)
		res := svc.Search(ctx, "wheat", 5)
		assert.False(t, res.Success)
	})

	t.Run("cancelled context fails under rate limiting", func(t *testing.T) {
		svc := NewService(Config{BaseURL: "http://127.0.0.1:1", RatePerMinute: 1}, logging.NewTestLogger().Logger)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		// First call consumes the burst; the second must wait and should
		// fail immediately on the cancelled context.
		svc.Search(cancelled, "first", 1)
		res := svc.Search(cancelled, "second", 1)
		assert.False(t, res.Success)
	})
}

func TestResolveRedirect(t *testing.T) {
	t.Run("unwraps uddg parameter", func(t *testing.T) {
		got := resolveRedirect("//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.org%2Fpage&rut=x")
		assert.Equal(t, "https://example.org/page", got)
	})

	t.Run("passes through direct links", func(t *testing.T) {
		assert.Equal(t, "https://example.org/a", resolveRedirect("https://example.org/a"))
	})

	t.Run("empty href stays empty", func(t *testing.T) {
		assert.Equal(t, "", resolveRedirect(""))
	})
}
