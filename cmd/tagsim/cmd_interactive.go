package main

import (
	"github.com/spf13/cobra"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/demo"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/logging"
)

func newInteractiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Ask for the settings on the console, then run",
		Long: `Prompt for default or custom settings and run one simulation.

Answering "no" reads the six parameters one per line, so the flow can be
scripted:

  printf 'no\n10\n20\n10\n5\n10\n5\n' | tagsim interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetUint64("seed")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			runner, err := newRunner(cfg, newLogger(cmd, cfg), nil)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			console := logging.NewConsole(cmd.OutOrStdout())
			_, err = runner.Interactive(ctx, cmd.InOrStdin(), console, demo.Request{Seed: seed})
			return err
		},
	}

	cmd.Flags().Uint64("seed", 0, "Random seed (0 uses the configured seed, or a random one)")

	return cmd
}
