// Package handlers implements the business logic of the delivery-cluster CLI commands.
//
// Handlers load the cluster configuration, wire the node directory for the
// configured driver, run the topology resolver and render results. Command
// definitions and flag parsing live in the commands package.
package handlers
