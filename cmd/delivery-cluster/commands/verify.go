package commands

import (
	"github.com/spf13/cobra"

	"github.com/cvent/delivery-cluster/cmd/delivery-cluster/handlers"
)

// Verify returns the command that checks node hostnames over SSH.
func Verify() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Compare resolved hostnames with the nodes' own",
		Long: `Connect to every node at its resolved address over SSH and compare
the output of 'hostname' with the resolved hostname.

The key is read from ssh.key_file; users and ports come from the ssh
connection table. Dial timeout and retries follow
DELIVERY_CLUSTER_TIMEOUT_SSH_DIAL and DELIVERY_CLUSTER_RETRY_*.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(func(g handlers.Globals) error {
				return handlers.Verify(cmd.Context(), g)
			})
		},
	}
}
