// Package httpapi provides the HTTP API for agrod.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/haritlabs/agrod/internal/enhance"
	"github.com/haritlabs/agrod/internal/logging"
	"github.com/haritlabs/agrod/internal/orchestrator"
)

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// Querier answers comprehensive farming queries.
type Querier interface {
	QueryComprehensive(ctx context.Context, query string, includeWebSearch bool) orchestrator.QueryResponse
	UpdateMarketDataLive(ctx context.Context) orchestrator.UpdateResult
}

// Enhancer produces fully composed answers.
type Enhancer interface {
	ComprehensiveAnswer(ctx context.Context, query string, confidence enhance.Confidence) string
}

// Server provides the agrod HTTP endpoints.
type Server struct {
	echo     *echo.Echo
	querier  Querier
	enhancer Enhancer
	logger   *logging.Logger
	config   *Config
}

// NewServer creates a new HTTP server.
func NewServer(querier Querier, enhancer Enhancer, logger *logging.Logger, cfg *Config) (*Server, error) {
	if querier == nil {
		return nil, fmt.Errorf("querier cannot be nil")
	}
	if enhancer == nil {
		return nil, fmt.Errorf("enhancer cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 8390,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Carry the request ID into handler logs.
			reqID := c.Response().Header().Get(echo.HeaderXRequestID)
			ctx := logging.ContextWithRequestID(c.Request().Context(), reqID)
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)
			duration := time.Since(start)

			logger.Info(ctx, "http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
			)

			return err
		}
	})

	s := &Server{
		echo:     e,
		querier:  querier,
		enhancer: enhancer,
		logger:   logger.Named("http"),
		config:   cfg,
	}
	e.Use(metricsMiddleware())

	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.POST("/query", s.handleQuery)
	v1.POST("/query/enhanced", s.handleEnhancedQuery)
	v1.POST("/market/refresh", s.handleMarketRefresh)
}

// QueryRequest is the request body for POST /api/v1/query.
type QueryRequest struct {
	Query            string `json:"query"`
	IncludeWebSearch *bool  `json:"include_web_search,omitempty"`
}

// EnhancedQueryRequest is the request body for POST /api/v1/query/enhanced.
type EnhancedQueryRequest struct {
	Query      string `json:"query"`
	Confidence string `json:"confidence,omitempty"`
}

// EnhancedQueryResponse is the response body for POST /api/v1/query/enhanced.
type EnhancedQueryResponse struct {
	Query     string    `json:"query"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleQuery runs the comprehensive retrieval pipeline.
func (s *Server) handleQuery(c echo.Context) error {
	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn(c.Request().Context(), "invalid query request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query field is required")
	}

	includeWeb := true
	if req.IncludeWebSearch != nil {
		includeWeb = *req.IncludeWebSearch
	}

	ctx := logging.ContextWithQuery(c.Request().Context(), req.Query)
	result := s.querier.QueryComprehensive(ctx, req.Query, includeWeb)

	return c.JSON(http.StatusOK, result)
}

// handleEnhancedQuery runs the context-enhanced answer pipeline.
func (s *Server) handleEnhancedQuery(c echo.Context) error {
	var req EnhancedQueryRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn(c.Request().Context(), "invalid enhanced query request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query field is required")
	}

	confidence := enhance.Confidence(req.Confidence)
	switch confidence {
	case enhance.ConfidenceLow, enhance.ConfidenceMedium, enhance.ConfidenceHigh:
	case "":
		confidence = enhance.ConfidenceMedium
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "confidence must be one of low, medium, high")
	}

	ctx := logging.ContextWithQuery(c.Request().Context(), req.Query)
	answer := s.enhancer.ComprehensiveAnswer(ctx, req.Query, confidence)

	return c.JSON(http.StatusOK, EnhancedQueryResponse{
		Query:     req.Query,
		Answer:    answer,
		Timestamp: time.Now().UTC(),
	})
}

// handleMarketRefresh triggers a live market data refresh.
func (s *Server) handleMarketRefresh(c echo.Context) error {
	result := s.querier.UpdateMarketDataLive(c.Request().Context())
	return c.JSON(http.StatusOK, result)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info(context.Background(), "starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down http server")
	return s.echo.Shutdown(ctx)
}
