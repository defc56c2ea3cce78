// Package command wires the CLI.
package command

import (
	"os"

	"github.com/spf13/cobra"
)

const AppName = "bridgecal"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "Bridgecal - a shared calendar for two time zones",
		Long:          "Bridgecal keeps a two-person schedule in sync across time zones: a dual timeline, shared feelings and highlights, and an offline-first remote bridge.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().Bool("json", false, "output in JSON format")

	cmd.AddCommand(
		NewInitCmd(),
		NewUICmd(),
		NewSyncCmd(),
		NewServeCmd(),
		NewAddCmd(),
		NewRmCmd(),
		NewFeelCmd(),
		NewHighlightCmd(),
		NewNamesCmd(),
		NewStatusCmd(),
		NewSlotsCmd(),
		NewAnalyzeCmd(),
	)

	return cmd
}

func Execute() error {
	return NewRootCmd(Version).Execute()
}
