package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRmCmd creates the rm command.
func NewRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <event-id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			before := len(ctx.Bridge.Events())
			ctx.Bridge.DeleteEvent(args[0])
			if len(ctx.Bridge.Events()) == before {
				fmt.Fprintf(cmd.OutOrStdout(), "No event %s (already gone?)\n", args[0])
				return nil
			}
			ctx.replicate(cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
