package commands

import (
	"github.com/spf13/cobra"

	"github.com/cvent/delivery-cluster/cmd/delivery-cluster/handlers"
)

const instanceHelp = `Roles: chef-server, delivery, supermarket, analytics, splunk, builders.
Builders take a 1-based index; the other roles take none.`

// Hostname returns the command that prints the short hostname of a node.
func Hostname() *cobra.Command {
	return &cobra.Command{
		Use:   "hostname <role> [index]",
		Short: "Print the hostname of a node",
		Long:  "Print the hostname of a node.\n\n" + instanceHelp,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			return run(func(g handlers.Globals) error {
				return handlers.Hostname(g, args[0], indexArg(args))
			})
		},
	}
}

// FQDN returns the command that prints the address of a node.
func FQDN() *cobra.Command {
	return &cobra.Command{
		Use:   "fqdn <role> [index]",
		Short: "Print the address of a node",
		Long: "Print the address of a node: the role's fqdn, else its host, else\n" +
			"what the configured driver reports.\n\n" + instanceHelp,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(g handlers.Globals) error {
				return handlers.FQDN(cmd.Context(), g, args[0], indexArg(args))
			})
		},
	}
}

func indexArg(args []string) string {
	if len(args) < 2 {
		return ""
	}
	return args[1]
}
