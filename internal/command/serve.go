package command

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"bridgecal/internal/bridge"
)

// NewServeCmd creates the serve command: a self-hosted bridge store for
// couples who would rather not trust a public JSON blob service.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a self-hosted bridge store server",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			dataDir, _ := cmd.Flags().GetString("data")

			store, err := bridge.NewBlobStore(dataDir)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Bridge store listening on %s (data in %s)\n", addr, dataDir)
			fmt.Fprintf(cmd.OutOrStdout(), "Point clients at: endpoint http://%s/bridges\n", addr)

			srv := &http.Server{Addr: addr, Handler: bridge.NewRouter(store)}
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return writeCommandError(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().String("addr", ":8037", "listen address")
	cmd.Flags().String("data", "./bridgecal-data", "directory for stored envelopes")
	return cmd
}
