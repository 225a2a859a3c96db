// Package config defines the topology store: the typed description of a
// delivery cluster that the address resolver reads.
//
// A [Config] carries one optional section per [Role], the cluster-wide
// [Driver], the cluster identity token used in generated names, and the
// driver-specific connection data (the SSH connection table, Hetzner Cloud
// and OpenStack settings). It is loaded once per run with [LoadFile],
// defaulted with [Config.ApplyDefaults] and checked with [Config.Validate].
// Nothing in this package mutates a loaded configuration afterwards.
package config
