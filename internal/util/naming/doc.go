// Package naming provides the deterministic node names of a delivery cluster.
//
// Singleton roles are named {prefix}-{cluster} (for example
// "delivery-server-prod"); builder instances are named
// build-node-{cluster}-{index}. The same names are used as display
// hostnames and as lookup keys into a remote node directory, so they must
// be computable from configuration alone.
package naming
