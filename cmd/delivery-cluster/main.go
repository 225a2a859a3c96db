// Package main is the entry point for the delivery-cluster CLI.
//
// delivery-cluster computes the hostname and address of every node of a
// Chef delivery cluster (chef-server, delivery, supermarket, analytics,
// splunk and the builder pool) from a declarative configuration file.
//
// Commands: init, validate, hostname, fqdn, topology, export, verify.
//
// For detailed usage information, run:
//
//	delivery-cluster --help
package main

import (
	"fmt"
	"os"

	"github.com/cvent/delivery-cluster/cmd/delivery-cluster/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
