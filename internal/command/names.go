package command

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"bridgecal/internal/types"
)

// NewNamesCmd creates the names command.
func NewNamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "names",
		Short: "Show or set the two display names",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			me, _ := cmd.Flags().GetString("me")
			partner, _ := cmd.Flags().GetString("partner")

			if me != "" || partner != "" {
				current := ctx.Bridge.Names()
				if me == "" {
					me = current.Me
				}
				if partner == "" {
					partner = current.Partner
				}
				ctx.Bridge.SetNames(types.Names{Me: me, Partner: partner})
				ctx.replicate(cmd)
			}

			names := ctx.Bridge.Names()
			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(names)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "me: %s\npartner: %s\n", names.Me, names.Partner)
			return nil
		},
	}

	cmd.Flags().String("me", "", "your display name")
	cmd.Flags().String("partner", "", "partner's display name")
	return cmd
}
