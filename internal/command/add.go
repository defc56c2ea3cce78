package command

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"bridgecal/internal/schedule"
	"bridgecal/internal/types"
	"bridgecal/internal/tz"
)

// NewAddCmd creates the add command.
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an event to the shared calendar",
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

			rawType, _ := cmd.Flags().GetString("type")
			typ, err := types.ParseEventType(rawType)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			day, err := ctx.dateFromFlag(cmd, owner)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			ev, err := schedule.NewEvent(args[0], start, end, day, ctx.zoneFor(owner), typ, owner)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			ctx.Bridge.AddEvent(ev)
			ctx.replicate(cmd)

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(ev)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s, %dm) on %s as %s\n",
				ev.Title, ev.Type, ev.DurationMinutes,
				tz.DateKey(ev.StartTime, ctx.zoneFor(owner)), ev.ID)
			return nil
		},
	}

	cmd.Flags().String("start", "", "start time HH:MM (required)")
	cmd.Flags().String("end", "", "end time HH:MM (required)")
	cmd.Flags().String("type", "other", "event type (work/sleep/leisure/date/study/other)")
	cmd.Flags().String("as", "me", "whose schedule (me/partner)")
	cmd.Flags().String("on", "", "calendar day YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
