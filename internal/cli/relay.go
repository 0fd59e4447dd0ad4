package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"planforge/internal/app"
)

// newRelayCommand creates the relay command.
func newRelayCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Serve the work-item webhook relay",
		Long: `Run the HTTP relay that accepts work-item webhooks and forwards them
as repository-dispatch events.

POST /events accepts the webhook payload behind Basic auth; GET /healthz
reports liveness. Credentials come from PLANFORGE_RELAY_USER and
PLANFORGE_RELAY_PASS, the dispatch token from PLANFORGE_DISPATCH_TOKEN.
The dispatch target is configured in plan/forge.toml under [relay].

The relay blocks until the listener fails or the process is stopped.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listen := addr
			if listen == "" {
				cfg, err := c.ConfigLoader.Load()
				if err != nil {
					return err
				}
				listen = cfg.Relay.Addr
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Relay listening on %s\n", listen)
			return c.RunRelay(listen)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config, :8418)")

	return cmd
}
