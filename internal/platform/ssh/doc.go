// Package ssh runs commands on cluster nodes over SSH.
//
// The verify command uses it to read back each node's hostname and compare
// it with the resolved topology. Connections are opened per call and dialing
// is retried with exponential backoff.
package ssh
