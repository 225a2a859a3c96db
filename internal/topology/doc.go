// Package topology turns a cluster configuration into concrete node
// identities.
//
// Two questions are answered for every (role, index) instance:
//
//   - ResolveHostname: the short name the node is provisioned under.
//     An explicit hostname wins; otherwise the name is generated from the
//     role prefix and the cluster id ("delivery-server-<id>",
//     "build-node-<id>-<n>").
//   - ResolveFQDN: the address other nodes use to reach it. An explicit
//     fqdn wins, then host, then the driver: the SSH connection table for
//     ssh and local, a node directory lookup for cloud drivers.
//
// Singleton roles take index 0. Builders take 1..count. The resolver keeps
// no mutable state and is safe for concurrent use; only FQDN resolution
// through a node directory blocks.
package topology
