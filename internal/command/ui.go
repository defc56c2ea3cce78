package command

import (
	"github.com/spf13/cobra"

	"bridgecal/internal/tui"
)

// NewUICmd creates the ui command.
func NewUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive dual-timezone timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			// Every mutation in the UI replicates in the background.
			ctx.Engine.BindPush(cmd.Context())

			err = tui.Run(cmd.Context(), tui.Options{
				Bridge:       ctx.Bridge,
				Engine:       ctx.Engine,
				Store:        ctx.Store,
				Clock:        ctx.Clock,
				MyZone:       ctx.MyZone,
				PartnerZone:  ctx.PartnerZone,
				PullInterval: ctx.Config.PullInterval,
			})
			if err != nil {
				return writeCommandError(cmd, err)
			}
			return nil
		},
	}
}
