package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritlabs/agrod/internal/enhance"
	"github.com/haritlabs/agrod/internal/logging"
	"github.com/haritlabs/agrod/internal/orchestrator"
)

// stubQuerier records calls and returns canned responses.
type stubQuerier struct {
	lastQuery      string
	lastIncludeWeb bool
	refreshCalls   int
}

func (s *stubQuerier) QueryComprehensive(ctx context.Context, query string, includeWebSearch bool) orchestrator.QueryResponse {
	s.lastQuery = query
	s.lastIncludeWeb = includeWebSearch
	return orchestrator.QueryResponse{
		Query:           query,
		Recommendations: []string{"a tip"},
		Timestamp:       time.Now().UTC(),
	}
}

func (s *stubQuerier) UpdateMarketDataLive(ctx context.Context) orchestrator.UpdateResult {
	s.refreshCalls++
	return orchestrator.UpdateResult{Success: true, TotalRecords: 2, Message: "Market data updated successfully"}
}

// stubEnhancer echoes the confidence it was given.
type stubEnhancer struct {
	lastConfidence enhance.Confidence
}

func (s *stubEnhancer) ComprehensiveAnswer(ctx context.Context, query string, confidence enhance.Confidence) string {
	s.lastConfidence = confidence
	return "Guidance for " + query
}

func setupTestServer(t *testing.T) (*Server, *stubQuerier, *stubEnhancer) {
	t.Helper()
	querier := &stubQuerier{}
	enhancer := &stubEnhancer{}
	server, err := NewServer(querier, enhancer, logging.NewTestLogger().Logger, nil)
	require.NoError(t, err)
	return server, querier, enhancer
}

func TestNewServer(t *testing.T) {
	t.Run("uses defaults when config is nil", func(t *testing.T) {
		server, _, _ := setupTestServer(t)
		assert.Equal(t, "localhost", server.config.Host)
		assert.Equal(t, 8390, server.config.Port)
	})

	t.Run("returns error when querier is nil", func(t *testing.T) {
		_, err := NewServer(nil, &stubEnhancer{}, logging.NewTestLogger().Logger, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "querier cannot be nil")
	})

	t.Run("returns error when enhancer is nil", func(t *testing.T) {
		_, err := NewServer(&stubQuerier{}, nil, logging.NewTestLogger().Logger, nil)
		assert.Error(t, err)
	})

	t.Run("returns error when logger is nil", func(t *testing.T) {
		_, err := NewServer(&stubQuerier{}, &stubEnhancer{}, nil, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "logger is required")
	})
}

func TestHandleHealth(t *testing.T) {
	server, _, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestHandleQuery(t *testing.T) {
	t.Run("answers a valid query", func(t *testing.T) {
		server, querier, _ := setupTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/query",
			strings.NewReader(`{"query":"wheat price"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "wheat price", querier.lastQuery)
		assert.True(t, querier.lastIncludeWeb)

		var resp orchestrator.QueryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "wheat price", resp.Query)
		assert.NotEmpty(t, resp.Recommendations)
	})

	t.Run("honors include_web_search=false", func(t *testing.T) {
		server, querier, _ := setupTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/query",
			strings.NewReader(`{"query":"wheat","include_web_search":false}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, querier.lastIncludeWeb)
	})

	t.Run("rejects empty query", func(t *testing.T) {
		server, _, _ := setupTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/query", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		server, _, _ := setupTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/query", strings.NewReader(`{not json`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleEnhancedQuery(t *testing.T) {
	t.Run("returns a composed answer", func(t *testing.T) {
		server, _, enhancer := setupTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/query/enhanced",
			strings.NewReader(`{"query":"sowing time","confidence":"low"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, enhance.ConfidenceLow, enhancer.lastConfidence)

		var resp EnhancedQueryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "sowing time", resp.Query)
		assert.Contains(t, resp.Answer, "sowing time")
	})

	t.Run("defaults confidence to medium", func(t *testing.T) {
		server, _, enhancer := setupTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/query/enhanced",
			strings.NewReader(`{"query":"sowing time"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, enhance.ConfidenceMedium, enhancer.lastConfidence)
	})

	t.Run("rejects unknown confidence", func(t *testing.T) {
		server, _, _ := setupTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/query/enhanced",
			strings.NewReader(`{"query":"x","confidence":"certain"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects empty query", func(t *testing.T) {
		server, _, _ := setupTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/query/enhanced", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleMarketRefresh(t *testing.T) {
	server, querier, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/market/refresh", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, querier.refreshCalls)

	var resp orchestrator.UpdateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.TotalRecords)
}

func TestRequestIDPropagation(t *testing.T) {
	server, _, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
