package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritlabs/agrod/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("rejects nil config", func(t *testing.T) {
		_, err := New(nil)
		assert.Error(t, err)
	})

	t.Run("builds from default config", func(t *testing.T) {
		cfg := config.NewDefaultConfig()
		a, err := New(cfg)
		require.NoError(t, err)
		assert.NotNil(t, a.Logger)
	})

	t.Run("rejects unparseable log level", func(t *testing.T) {
		cfg := config.NewDefaultConfig()
		cfg.Logging.Level = "verbose"
		_, err := New(cfg)
		assert.Error(t, err)
	})
}

func TestInitAndShutdown(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Knowledge.DatabasePath = filepath.Join(t.TempDir(), "kb.db")
	// Avoid live backend calls during the seeding pass.
	cfg.Knowledge.SeedOnStart = false

	a, err := New(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, a.Init(ctx))

	assert.NotNil(t, a.Knowledge)
	assert.NotNil(t, a.Orchestrator)
	assert.NotNil(t, a.Enhancer)
	assert.NotNil(t, a.Server)

	assert.NoError(t, a.Shutdown(ctx))
}
