// Agrod is a farming knowledge daemon with HTTP transport.
//
// This binary starts the agrod HTTP server with full service
// initialization: embeddings, the SQLite-backed knowledge base, website
// data access and web search.
//
// Configuration is loaded from an optional YAML file plus AGROD_*
// environment variables. See internal/config for details.
//
// Usage:
//
//	# Start server with defaults
//	agrod serve
//
//	# Configure via file and environment
//	AGROD_SERVER_PORT=9090 agrod serve --config agrod.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/haritlabs/agrod/internal/app"
	"github.com/haritlabs/agrod/internal/config"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "agrod",
	Short: "Farming knowledge daemon",
	Long: `agrod serves retrieval-augmented farming answers over HTTP.

It maintains a local knowledge base built from farm application data and
static agronomy knowledge, escalates to web search when local retrieval
is weak, and composes location- and season-aware answers.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the agrod HTTP server",
	Long: `Start the agrod HTTP server.

Examples:
  # Start with defaults
  agrod serve

  # Start with a config file
  agrod serve --config /etc/agrod/agrod.yaml`,
	RunE: runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("agrod\n")
		fmt.Printf("Version:    %s\n", version)
		fmt.Printf("Commit:     %s\n", gitCommit)
		fmt.Printf("Build Date: %s\n", buildDate)
	},
}

// runServe initializes all services and blocks until a shutdown signal.
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	if err := a.Init(ctx); err != nil {
		return err
	}

	if err := a.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
