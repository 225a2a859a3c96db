// Package directory defines the remote node directory consulted by the
// address resolver for cloud drivers, plus decorators that add retry,
// memoization and metrics to any implementation.
package directory

import (
	"context"
	"errors"

	"github.com/cvent/delivery-cluster/internal/config"
)

// ErrNotFound is returned when no node record exists under the requested name.
var ErrNotFound = errors.New("node not found")

// Directory looks node records up by name.
type Directory interface {
	GetNodeRecord(ctx context.Context, name string) (*NodeRecord, error)
}

// Func adapts a function to the Directory interface.
type Func func(ctx context.Context, name string) (*NodeRecord, error)

// GetNodeRecord calls f.
func (f Func) GetNodeRecord(ctx context.Context, name string) (*NodeRecord, error) {
	return f(ctx, name)
}

// NodeRecord is what a directory knows about one node.
type NodeRecord struct {
	Name       string
	PublicIPv4 string
	PublicIPv6 string
	PrivateIP  string

	// Preferred selects the authoritative address. Empty means public IPv4.
	Preferred config.AddressKind
}

// Address returns the preferred address, falling back to the first
// non-empty address in the order public IPv4, public IPv6, private.
func (r *NodeRecord) Address() string {
	if r == nil {
		return ""
	}
	switch r.Preferred {
	case config.AddressPublicIPv6:
		if r.PublicIPv6 != "" {
			return r.PublicIPv6
		}
	case config.AddressPrivate:
		if r.PrivateIP != "" {
			return r.PrivateIP
		}
	default:
		if r.PublicIPv4 != "" {
			return r.PublicIPv4
		}
	}
	for _, addr := range []string{r.PublicIPv4, r.PublicIPv6, r.PrivateIP} {
		if addr != "" {
			return addr
		}
	}
	return ""
}
