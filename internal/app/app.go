// Package app wires the agrod services into a single application object.
//
// There is deliberately no package-level singleton: callers construct an
// App, initialize it, and shut it down. Tests can build as many
// independent instances as they need.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/haritlabs/agrod/internal/config"
	"github.com/haritlabs/agrod/internal/embeddings"
	"github.com/haritlabs/agrod/internal/enhance"
	"github.com/haritlabs/agrod/internal/httpapi"
	"github.com/haritlabs/agrod/internal/knowledge"
	"github.com/haritlabs/agrod/internal/logging"
	"github.com/haritlabs/agrod/internal/orchestrator"
	"github.com/haritlabs/agrod/internal/websearch"
	"github.com/haritlabs/agrod/internal/website"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

// App holds the wired agrod services.
type App struct {
	Config       *config.Config
	Logger       *logging.Logger
	Embedder     embeddings.Provider
	Knowledge    *knowledge.Base
	Website      *website.Client
	WebSearch    *websearch.Service
	Orchestrator *orchestrator.Orchestrator
	Enhancer     *enhance.Layer
	Server       *httpapi.Server
}

// New builds the application from configuration. The knowledge base and
// downstream services are constructed even when the embedding provider
// fails; retrieval then runs in degraded mode rather than refusing to
// start.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logCfg := logging.NewDefaultConfig()
	logCfg.Level = level
	logCfg.Format = cfg.Logging.Format

	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	a := &App{
		Config: cfg,
		Logger: logger,
	}

	embedder, err := embeddings.NewProvider(embeddings.ProviderConfig{
		Provider: cfg.Embedding.Provider,
		Model:    cfg.Embedding.Model,
		BaseURL:  cfg.Embedding.BaseURL,
		APIKey:   cfg.Embedding.APIKey.Value(),
		CacheDir: cfg.Embedding.CacheDir,
	})
	if err != nil {
		logger.Warn(context.Background(), "embedding provider unavailable, knowledge base will run disabled",
			zap.String("provider", cfg.Embedding.Provider), zap.Error(err))
	} else {
		a.Embedder = embedder
	}

	return a, nil
}

// Init constructs and seeds the retrieval services. Safe to call once
// after New; initialization failures below the embedding layer degrade
// rather than abort.
func (a *App) Init(ctx context.Context) error {
	a.Knowledge = knowledge.New(ctx, knowledge.Config{
		DatabasePath: a.Config.Knowledge.DatabasePath,
	}, a.Embedder, a.Logger)

	a.Website = website.NewClient(website.Config{
		BaseURL: a.Config.Website.BaseURL,
		Timeout: a.Config.Website.Timeout.Duration(),
	}, a.Logger)

	a.WebSearch = websearch.NewService(websearch.Config{
		BaseURL:       a.Config.WebSearch.BaseURL,
		Timeout:       a.Config.WebSearch.Timeout.Duration(),
		MaxResults:    a.Config.WebSearch.MaxResults,
		RatePerMinute: a.Config.WebSearch.RatePerMinute,
	}, a.Logger)

	a.Orchestrator = orchestrator.New(a.Knowledge, a.Website, a.WebSearch, a.Logger)
	if a.Config.Knowledge.SeedOnStart {
		a.Orchestrator.Initialize(ctx)
	}

	a.Enhancer = enhance.New(a.Orchestrator, a.WebSearch, a.Website, a.Logger)

	server, err := httpapi.NewServer(a.Orchestrator, a.Enhancer, a.Logger, &httpapi.Config{
		Host: a.Config.Server.Host,
		Port: a.Config.Server.Port,
	})
	if err != nil {
		return fmt.Errorf("create http server: %w", err)
	}
	a.Server = server

	return nil
}

// Run starts the HTTP server and blocks until ctx is cancelled, then
// shuts everything down.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Shutdown(shutdownCtx)
}

// Shutdown releases all application resources.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error

	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			firstErr = fmt.Errorf("shutdown http server: %w", err)
		}
	}
	if a.Knowledge != nil {
		if err := a.Knowledge.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close knowledge base: %w", err)
		}
	}
	if a.Embedder != nil {
		if err := a.Embedder.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close embedding provider: %w", err)
		}
	}

	a.Logger.Sync()
	return firstErr
}
