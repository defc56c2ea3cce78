package command

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"bridgecal/internal/core"
	"bridgecal/internal/types"
	"bridgecal/internal/tz"
)

// NewFeelCmd creates the feel command.
func NewFeelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feel <text>",
		Short: "Attach a feeling to today",
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

			emoji, _ := cmd.Flags().GetString("emoji")
			feeling := types.DailyFeeling{
				ID:        core.NewID("feel"),
				Owner:     owner,
				Text:      args[0],
				Emoji:     emoji,
				Timestamp: ctx.Clock.Now().UTC(),
				DateKey:   tz.DateKey(day, ctx.zoneFor(owner)),
			}
			ctx.Bridge.AddFeeling(feeling)
			ctx.replicate(cmd)

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(feeling)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Shared %s %s on %s\n", feeling.Emoji, feeling.Text, feeling.DateKey)
			return nil
		},
	}

	cmd.Flags().String("emoji", "", "emoji to attach")
	cmd.Flags().String("as", "me", "whose feeling (me/partner)")
	cmd.Flags().String("on", "", "calendar day YYYY-MM-DD (default today)")
	return cmd
}
