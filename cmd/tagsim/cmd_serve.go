package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/metrics"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/pathutil"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/server"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/visualization"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web front end",
		Long: `Serve the demo form at / and run simulations on POST /run_demo.

Rendered graphs are downloadable from /download/{filename}. Prometheus
metrics are at /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			open, _ := cmd.Flags().GetBool("open")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			logger := newLogger(cmd, cfg)
			reg := metrics.DefaultRegistry()
			runner, err := newRunner(cfg, logger, reg)
			if err != nil {
				return err
			}

			srv := server.New(runner, server.OptionsFromConfig(cfg.Server), logger, reg)

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe(ctx) }()

			deadline := time.Now().Add(3 * time.Second)
			for time.Now().Before(deadline) && srv.Addr() == "" {
				select {
				case err := <-errCh:
					return fmt.Errorf("server error: %w", err)
				case <-time.After(10 * time.Millisecond):
				}
			}
			if srv.Addr() == "" {
				return fmt.Errorf("server failed to start")
			}

			url := "http://" + srv.Addr()
			fmt.Fprintf(cmd.OutOrStdout(), "Serving on %s (artifacts in %s)\n", url, pathutil.RedactPath(cfg.Output.Dir))
			fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl-C to stop.\n")

			if open {
				if err := visualization.OpenBrowser(url); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Could not open browser: %v\nOpen %s manually.\n", err, url)
				}
			}

			if err := <-errCh; err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default from config, 0.0.0.0:5000)")
	cmd.Flags().Bool("open", false, "Open the form in a browser")

	return cmd
}
