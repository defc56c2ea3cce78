package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// NewSyncCmd creates the sync command.
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push local state and pull the shared bridge record",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			daemon, _ := cmd.Flags().GetBool("daemon")
			if daemon {
				return runSyncDaemon(cmd, ctx)
			}

			bg, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			if err := ctx.Engine.Push(bg); err != nil {
				return writeCommandError(cmd, fmt.Errorf("push: %w", err))
			}
			result, err := ctx.Engine.PullOnce(bg)
			if err != nil {
				return writeCommandError(cmd, fmt.Errorf("pull: %w", err))
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"status":      string(ctx.Engine.Status()),
					"newEvents":   len(result.NewEvents),
					"newFeelings": len(result.NewFeelings),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Synced: %d new event(s), %d new feeling(s)\n",
				len(result.NewEvents), len(result.NewFeelings))
			return nil
		},
	}

	cmd.Flags().Bool("daemon", false, "keep syncing on the configured interval until interrupted")
	return cmd
}

// runSyncDaemon polls on a cron schedule until SIGINT/SIGTERM. Useful on a
// headless machine that should keep the cache warm for the UI.
func runSyncDaemon(cmd *cobra.Command, ctx *CommandContext) error {
	bg, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	pull := func() {
		result, err := ctx.Engine.PullOnce(bg)
		if err != nil {
			return
		}
		if n := len(result.NewEvents) + len(result.NewFeelings); n > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "pulled %d update(s)\n", n)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", ctx.Config.PullInterval), pull); err != nil {
		return writeCommandError(cmd, err)
	}

	// Push once up front so a fresh replica publishes its cache, then pull
	// immediately instead of waiting a full interval.
	_ = ctx.Engine.Push(bg)
	pull()

	c.Start()
	defer c.Stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Syncing %s every %s (ctrl-c to stop)\n",
		ctx.Config.Bridge, ctx.Config.PullInterval)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
