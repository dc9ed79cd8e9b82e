// Package cli provides the dockctl command-line interface for inspecting,
// validating and managing docking layout documents.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docktree/docktree/internal/config"
	"github.com/docktree/docktree/internal/logging"
)

// Build-time variables (set via ldflags).
var (
	Version = "dev"
	Commit  = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "dockctl",
	Short: "Inspect and manage docking layout documents",
	Long: `dockctl works with the JSON layout documents produced by the docktree
engine: render them as a tree, validate their structure, and keep a
named library of layouts in a local database.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// cmdContext builds the context CLI commands run under: configuration
// loaded, logger attached at the configured level.
func cmdContext() (context.Context, *config.Config, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	cfg := manager.Get()

	logger := logging.New(cfg.Logging.Level)
	ctx := logging.WithContext(context.Background(), logger)
	return ctx, cfg, nil
}
