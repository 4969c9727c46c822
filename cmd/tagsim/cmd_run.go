package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/demo"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/logging"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/params"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/visualization"
)

// paramFlags maps each parameter to its flag name and help text.
var paramFlags = []struct {
	field string
	flag  string
	usage string
}{
	{"num_community_users", "community-users", "Number of users in the dense community"},
	{"num_other_users", "other-users", "Number of other users"},
	{"num_resources", "resources", "Total number of resources"},
	{"num_tags", "tags", "Total number of tags"},
	{"community_activity", "community-activity", "Tagging events per community user"},
	{"other_activity", "other-activity", "Tagging events per other user"},
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation and render the graph",
		Long: `Simulate tagging activity, build the co-occurrence graph, and write the
rendered artifact to the output directory.

Parameters start from a preset and individual flags override it.

Examples:
  tagsim run                                   # interactive preset, PNG
  tagsim run --preset scripted --format dot
  tagsim run --community-users 20 --tags 8 --seed 42
  tagsim run --export-db graph.db --export-jsonl out/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			presetName, _ := cmd.Flags().GetString("preset")
			seed, _ := cmd.Flags().GetUint64("seed")
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			exportDB, _ := cmd.Flags().GetString("export-db")
			exportJSONL, _ := cmd.Flags().GetString("export-jsonl")
			open, _ := cmd.Flags().GetBool("open")

			p, err := params.Preset(presetName)
			if err != nil {
				return err
			}
			for _, pf := range paramFlags {
				if cmd.Flags().Changed(pf.flag) {
					v, _ := cmd.Flags().GetInt(pf.flag)
					p.Set(pf.field, v)
				}
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if output != "" {
				cfg.Output.Dir = output
			}
			logger := newLogger(cmd, cfg)
			runner, err := newRunner(cfg, logger, nil)
			if err != nil {
				return err
			}

			req := demo.Request{
				Name:        presetName,
				Params:      p,
				Seed:        seed,
				ExportDB:    exportDB,
				ExportJSONL: exportJSONL,
			}
			if format != "" {
				if req.Format, err = visualization.ParseFormat(format); err != nil {
					return err
				}
			}

			console := logging.NewConsole(cmd.OutOrStdout())
			if jsonOut {
				console = logging.NewConsole(nil)
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			report, err := runner.Run(ctx, req, console)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			if report.ArtifactPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\nGraph written to %s\n", report.ArtifactPath)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seed: %d\n", report.Seed)
			if report.ExportDBPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported SQLite: %s\n", report.ExportDBPath)
			}
			if report.NodesPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported JSONL: %s, %s\n", report.NodesPath, report.EdgesPath)
			}

			if open && report.ArtifactPath != "" {
				if err := visualization.OpenBrowser(report.ArtifactPath); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Could not open viewer: %v\nOpen %s manually.\n", err, report.ArtifactPath)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("preset", params.PresetInteractive, "Parameter preset: interactive or scripted")
	for _, pf := range paramFlags {
		cmd.Flags().Int(pf.flag, 0, pf.usage+" (overrides the preset)")
	}
	cmd.Flags().Uint64("seed", 0, "Random seed (0 uses the configured seed, or a random one)")
	cmd.Flags().String("format", "", "Artifact format: png, dot, json, or html (default from config)")
	cmd.Flags().StringP("output", "o", "", "Output directory (default from config)")
	cmd.Flags().String("export-db", "", "Also export the graph to this SQLite file")
	cmd.Flags().String("export-jsonl", "", "Also write nodes.jsonl and edges.jsonl to this directory")
	cmd.Flags().Bool("open", false, "Open the artifact after writing it")

	return cmd
}
