package command

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"bridgecal/internal/types"
	"bridgecal/internal/tz"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show local state and sync configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			now := ctx.Clock.Now()
			names := ctx.Bridge.Names()
			events := ctx.Bridge.Events()
			todayKey := tz.DateKey(now, ctx.MyZone)
			feelings := append(
				ctx.Bridge.FeelingsFor(todayKey, types.OwnerMe),
				ctx.Bridge.FeelingsFor(todayKey, types.OwnerPartner)...)

			if ctx.JSONMode {
				out := map[string]any{
					"endpoint":      ctx.Config.Endpoint,
					"bridge":        ctx.Config.Bridge,
					"myZone":        ctx.Config.MyZone,
					"partnerZone":   ctx.Config.PartnerZone,
					"names":         names,
					"events":        len(events),
					"feelingsToday": len(feelings),
					"syncStatus":    string(ctx.Engine.Status()),
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "bridge:   %s at %s\n", ctx.Config.Bridge, ctx.Config.Endpoint)
			fmt.Fprintf(w, "%s:  %s %s\n", names.Me, tz.CurrentLocalTime(now, ctx.MyZone), tz.Abbreviation(now, ctx.MyZone))
			fmt.Fprintf(w, "%s:  %s %s\n", names.Partner, tz.CurrentLocalTime(now, ctx.PartnerZone), tz.Abbreviation(now, ctx.PartnerZone))
			fmt.Fprintf(w, "events:   %d\n", len(events))
			fmt.Fprintf(w, "feelings today: %d\n", len(feelings))
			if h, ok := ctx.Bridge.Highlight(todayKey); ok && h.Title != "" {
				fmt.Fprintf(w, "highlight: %s\n", h.Title)
			}
			fmt.Fprintf(w, "sync:     %s\n", ctx.Engine.Status())
			return nil
		},
	}
}
