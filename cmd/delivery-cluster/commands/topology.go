package commands

import (
	"github.com/spf13/cobra"

	"github.com/cvent/delivery-cluster/cmd/delivery-cluster/handlers"
)

// Topology returns the command that prints every node of the cluster.
func Topology() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "topology",
		Short: "Print hostname and address of every node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(func(g handlers.Globals) error {
				return handlers.Topology(cmd.Context(), g, output)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", handlers.OutputTable, "Output format: table, json or yaml")

	return cmd
}
