package command

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"bridgecal/internal/core"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file and create the local cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := core.LoadConfig()
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if v, _ := cmd.Flags().GetString("endpoint"); v != "" {
				cfg.Endpoint = v
			}
			if v, _ := cmd.Flags().GetString("bridge"); v != "" {
				cfg.Bridge = v
			}
			if v, _ := cmd.Flags().GetString("my-zone"); v != "" {
				cfg.MyZone = v
			}
			if v, _ := cmd.Flags().GetString("partner-zone"); v != "" {
				cfg.PartnerZone = v
			}

			// Fail early on bad zone names rather than at first render.
			if _, err := time.LoadLocation(cfg.MyZone); err != nil {
				return writeCommandError(cmd, fmt.Errorf("unknown zone %q", cfg.MyZone))
			}
			if _, err := time.LoadLocation(cfg.PartnerZone); err != nil {
				return writeCommandError(cmd, fmt.Errorf("unknown zone %q", cfg.PartnerZone))
			}

			home, err := os.UserHomeDir()
			if err != nil {
				return writeCommandError(cmd, err)
			}
			path := filepath.Join(home, ".bridgecal.yaml")
			if err := cfg.WriteConfig(path); err != nil {
				return writeCommandError(cmd, err)
			}

			dir, err := cfg.DataDir()
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return writeCommandError(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Cache at %s\n", dir)
			fmt.Fprintf(cmd.OutOrStdout(), "Zones: %s / %s\n", cfg.MyZone, cfg.PartnerZone)
			return nil
		},
	}

	cmd.Flags().String("endpoint", "", "remote bridge store base URL")
	cmd.Flags().String("bridge", "", "shared bridge record id")
	cmd.Flags().String("my-zone", "", "your IANA time zone")
	cmd.Flags().String("partner-zone", "", "partner's IANA time zone")
	return cmd
}
