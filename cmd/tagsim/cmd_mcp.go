package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/config"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/mcp"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/metrics"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run as an MCP server over stdio",
		Long: `Expose tagsim_run and tagsim_presets as MCP tools over stdio.

Tool calls are recorded in ~/.tagsim/audit.jsonl.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, cfg)
			runner, err := newRunner(cfg, logger, metrics.DefaultRegistry())
			if err != nil {
				return err
			}

			var auditDir string
			if p := config.DefaultPath(); p != "" {
				auditDir = filepath.Dir(p)
			}

			srv, err := mcp.NewServer(&mcp.Config{
				Name:     "tagsim",
				Version:  version,
				Runner:   runner,
				Logger:   logger,
				AuditDir: auditDir,
			})
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
}
