// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cvent/delivery-cluster/cmd/delivery-cluster/handlers"
)

// Global flag names. Each is also read from DELIVERY_CLUSTER_<NAME>.
const (
	FlagConfig          = "config"
	FlagVerbose         = "verbose"
	FlagMetricsTextfile = "metrics-textfile"
	FlagParallelism     = "parallelism"
)

const defaultParallelism = 8

const defaultConfigPath = "delivery-cluster.yaml"

// Root returns the root command for the delivery-cluster CLI.
//
// Global flags are bound through viper so that DELIVERY_CLUSTER_CONFIG and
// friends work wherever the flag is not given.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "delivery-cluster",
		Short:         "Resolve hostnames and addresses of a Chef delivery cluster",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringP(FlagConfig, "c", defaultConfigPath, "Cluster configuration file")
	flags.CountP(FlagVerbose, "v", "Increase log verbosity (repeatable)")
	flags.String(FlagMetricsTextfile, "", "Write prometheus metrics to this file on exit")
	flags.Int(FlagParallelism, defaultParallelism, "Maximum concurrent node lookups and SSH sessions (0 for unbounded)")

	viper.SetEnvPrefix("delivery_cluster")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	lo.Must0(viper.BindPFlags(flags))

	cmd.AddCommand(Init())
	cmd.AddCommand(Validate())
	cmd.AddCommand(Hostname())
	cmd.AddCommand(FQDN())
	cmd.AddCommand(Topology())
	cmd.AddCommand(Export())
	cmd.AddCommand(Verify())
	cmd.AddCommand(Version())

	return cmd
}

// run builds the shared globals, calls fn and flushes metrics.
func run(fn func(g handlers.Globals) error) error {
	g := handlers.NewGlobals(
		viper.GetString(FlagConfig),
		viper.GetInt(FlagVerbose),
		viper.GetString(FlagMetricsTextfile),
	)
	g.Parallelism = viper.GetInt(FlagParallelism)
	return g.Finish(fn(g))
}
