package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/config"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/demo"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/logging"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/metrics"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tagsim",
		Short: "Social tagging network generator",
		Long: `tagsim simulates users tagging resources and connects users who applied
the same tag to the same resource.

A small dense community draws from a narrow slice of resources and tags,
while other users draw from everything. The resulting co-occurrence graph
is rendered with community members highlighted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.tagsim/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, or trace")

	rootCmd.AddCommand(
		newRunCmd(),
		newInteractiveCmd(),
		newServeCmd(),
		newMCPServerCmd(),
		newPresetsCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// loadConfig loads the configuration named by --config, applies --log-level,
// and validates the result.
func loadConfig(cmd *cobra.Command) (*config.TagsimConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger logs to stderr so stdout stays free for results and MCP traffic.
func newLogger(cmd *cobra.Command, cfg *config.TagsimConfig) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
}

// newRunner builds a demo runner from cfg. A nil registry disables metrics.
func newRunner(cfg *config.TagsimConfig, logger *slog.Logger, reg *metrics.Registry) (*demo.Runner, error) {
	opts, err := demo.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return demo.NewRunner(opts, logger, reg), nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	notifySignals(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
