package commands

import (
	"github.com/spf13/cobra"

	"github.com/cvent/delivery-cluster/cmd/delivery-cluster/handlers"
)

// Validate returns the command that checks a cluster configuration.
func Validate() *cobra.Command {
	var require []string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the cluster configuration",
		Long: `Load and validate the cluster configuration.

Every configured role is checked, as is every role named with --require.
A required role without a section fails with "missing role configuration".`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(func(g handlers.Globals) error {
				return handlers.Validate(g, require)
			})
		},
	}

	cmd.Flags().StringSliceVar(&require, "require", nil, "Roles that must be configured")

	return cmd
}
