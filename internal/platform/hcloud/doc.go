// Package hcloud implements the node directory on top of the Hetzner Cloud API.
//
// Nodes are looked up by server name. The authoritative address is chosen by
// the configured address kind:
//
//   - public-ipv4: the primary public IPv4 (default)
//   - public-ipv6: the first host address of the server's public /64
//   - private: the IP of the first attached private network
//
// Errors are classified for the retry decorator: not_found maps to
// directory.ErrNotFound, invalid input and auth failures are fatal, and
// everything else (rate limits, locks, transport errors) is retryable.
package hcloud
