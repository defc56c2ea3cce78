package command

import (
	"encoding/json"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"bridgecal/internal/types"
	"bridgecal/internal/tz"
)

// NewHighlightCmd creates the highlight command.
func NewHighlightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highlight <title>",
		Short: "Set the shared highlight for a day",
		Long:  "Set the shared highlight for a day. There is one highlight per day; setting it again replaces the previous one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			owner, err := ownerFromFlag(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			day, err := ctx.dateFromFlag(cmd, owner)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			color, _ := cmd.Flags().GetString("color")
			if color != "" {
				if _, err := colorful.Hex(color); err != nil {
					return writeCommandError(cmd, fmt.Errorf("invalid color %q, want hex like #ff6b9d", color))
				}
			}

			h := types.DailyHighlight{
				DateKey: tz.DateKey(day, ctx.zoneFor(owner)),
				Title:   args[0],
				Color:   color,
			}
			ctx.Bridge.SetHighlight(h)
			ctx.replicate(cmd)

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(h)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Highlight for %s: %s\n", h.DateKey, h.Title)
			return nil
		},
	}

	cmd.Flags().String("color", "", "hex color like #ff6b9d")
	cmd.Flags().String("as", "me", "whose day keys the date (me/partner)")
	cmd.Flags().String("on", "", "calendar day YYYY-MM-DD (default today)")
	return cmd
}
