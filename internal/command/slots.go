package command

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bridgecal/internal/schedule"
	"bridgecal/internal/types"
	"bridgecal/internal/tz"
)

// NewSlotsCmd creates the slots command: the dual timeline as plain text,
// for scripts and quick glances without the full UI.
func NewSlotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print the dual-zone timeline for a day",
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

			zone := ctx.zoneFor(owner)
			other := ctx.zoneFor(owner.Other())
			slots := tz.HalfHourSlots(day, zone)

			mine := ctx.Bridge.EventsFor(owner)
			theirs := ctx.Bridge.EventsFor(owner.Other())
			names := ctx.Bridge.Names()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s  (%s left, %s right)\n",
				tz.FormatFullDate(day, zone), names.For(owner), names.For(owner.Other()))
			for i, slot := range slots[:tz.SlotCount-1] {
				fmt.Fprintf(w, "%5s  %-24s %-24s %5s\n",
					tz.SlotLabel(i, slot, zone),
					slotText(mine, slots, i),
					slotText(theirs, slots, i),
					tz.FormatInZone(slot, other))
			}
			fmt.Fprintf(w, "%5s\n", tz.SlotLabel(tz.SlotCount-1, slots[tz.SlotCount-1], zone))
			return nil
		},
	}

	cmd.Flags().String("as", "me", "whose day to lay out (me/partner)")
	cmd.Flags().String("on", "", "calendar day YYYY-MM-DD (default today)")
	return cmd
}

func slotText(events []types.CalendarEvent, slots []time.Time, i int) string {
	ev := schedule.EventInSlot(events, slots[i])
	if ev == nil {
		return "."
	}
	if i == 0 || schedule.EventInSlot(events, slots[i-1]) == nil ||
		schedule.EventInSlot(events, slots[i-1]).ID != ev.ID {
		return fmt.Sprintf("[%s] %s", ev.Type, ev.Title)
	}
	return "|"
}
