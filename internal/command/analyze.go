package command

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"bridgecal/internal/analysis"
	"bridgecal/internal/types"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Find shared free windows across both schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			client := analysis.NewClient(ctx.Config.AnalysisEndpoint)
			result := client.Analyze(cmd.Context(),
				ctx.Bridge.EventsFor(types.OwnerMe),
				ctx.Bridge.EventsFor(types.OwnerPartner),
				ctx.Config.MyZone, ctx.Config.PartnerZone)

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, result.Summary)
			if len(result.OverlapWindows) > 0 {
				fmt.Fprintln(w)
				for _, win := range result.OverlapWindows {
					fmt.Fprintf(w, "  %s\n", analysis.FormatWindow(win))
				}
			}
			if len(result.Suggestions) > 0 {
				fmt.Fprintln(w)
				for _, s := range result.Suggestions {
					fmt.Fprintf(w, "  · %s\n", s)
				}
			}
			return nil
		},
	}
}
