package commands

import (
	"github.com/spf13/cobra"

	"github.com/cvent/delivery-cluster/cmd/delivery-cluster/handlers"
)

// Init returns the command for creating a cluster configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "delivery-cluster.yaml")
//	--id: Cluster id (default: generated)
//	--driver: ssh, local, hcloud or openstack
//	--builders: Number of builder nodes
//	--non-interactive: Never prompt
func Init() *cobra.Command {
	var opts handlers.InitOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a cluster configuration",
		Long: `Create a cluster configuration file.

On a terminal this asks for:

  - Cluster id and driver
  - Roles to deploy and the number of builders
  - SSH user and key (ssh and local drivers only)

Flags preselect the answers. With --non-interactive, or when stdout is
not a terminal, the flags and defaults are written as they are. A random
cluster id is generated when --id is not given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", defaultConfigPath, "Output file path")
	cmd.Flags().StringVar(&opts.ID, "id", "", "Cluster id (default: generated)")
	cmd.Flags().StringVar(&opts.Driver, "driver", "", "Driver: ssh, local, hcloud or openstack")
	cmd.Flags().IntVar(&opts.Builders, "builders", -1, "Number of builder nodes (default 1)")
	cmd.Flags().BoolVar(&opts.NonInteractive, "non-interactive", false, "Do not prompt")

	return cmd
}
