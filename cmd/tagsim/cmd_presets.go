package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/params"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the named parameter presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			names := params.PresetNames()
			if jsonOut {
				out := make(map[string]params.Params, len(names))
				for _, name := range names {
					out[name], _ = params.Preset(name)
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tCOMMUNITY\tOTHER\tRESOURCES\tTAGS\tCOMM ACT\tOTHER ACT\tEVENTS")
			for _, name := range names {
				p, _ := params.Preset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n", name,
					p.NumCommunityUsers, p.NumOtherUsers, p.NumResources, p.NumTags,
					p.CommunityActivity, p.OtherActivity, p.TotalEvents())
			}
			return w.Flush()
		},
	}
}
