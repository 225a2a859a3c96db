// Package openstack implements the node directory on top of OpenStack Compute.
//
// Credentials come from the standard OS_* environment variables.
package openstack

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/go-logr/logr"
	"github.com/gophercloud/gophercloud"
	"github.com/gophercloud/gophercloud/openstack"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/servers"

	"github.com/cvent/delivery-cluster/internal/config"
	"github.com/cvent/delivery-cluster/internal/directory"
	"github.com/cvent/delivery-cluster/internal/util/retry"
)

// Directory resolves node records from Nova servers.
type Directory struct {
	client  *gophercloud.ServiceClient
	address config.AddressKind
	log     logr.Logger
}

// Option configures a Directory.
type Option func(*Directory)

// WithServiceClient uses an existing compute client instead of authenticating.
func WithServiceClient(c *gophercloud.ServiceClient) Option {
	return func(d *Directory) {
		d.client = c
	}
}

// WithLogger sets the logger used for lookup tracing.
func WithLogger(log logr.Logger) Option {
	return func(d *Directory) {
		d.log = log
	}
}

// NewDirectory creates a Directory for the openstack section of the cluster config.
func NewDirectory(cfg config.OpenStackConfig, opts ...Option) (*Directory, error) {
	d := &Directory{
		address: cfg.Address,
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.client != nil {
		return d, nil
	}

	authOpts, err := openstack.AuthOptionsFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth options from env: %w", err)
	}

	provider, err := openstack.AuthenticatedClient(authOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticated client: %w", err)
	}

	d.client, err = openstack.NewComputeV2(provider, gophercloud.EndpointOpts{
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get compute client: %w", err)
	}
	return d, nil
}

// GetNodeRecord implements directory.Directory.
//
// Nova filters names by regular expression, so the name is anchored and
// quoted to get an exact match.
func (d *Directory) GetNodeRecord(ctx context.Context, name string) (*directory.NodeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.log.V(1).Info("looking up server", "name", name)

	pages, err := servers.List(d.clientWithContext(ctx), servers.ListOpts{
		Name: "^" + regexp.QuoteMeta(name) + "$",
	}).AllPages()
	if ctxErr := ctx.Err(); ctxErr != nil {
		// A reply that raced the deadline is not used.
		return nil, fmt.Errorf("failed to list servers named '%s': %w", name, ctxErr)
	}
	if err != nil {
		return nil, classify(name, err)
	}

	found, err := servers.ExtractServers(pages)
	if err != nil {
		return nil, retry.Fatal(fmt.Errorf("failed to extract servers for '%s': %w", name, err))
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", directory.ErrNotFound, name)
	case 1:
	default:
		return nil, retry.Fatal(fmt.Errorf("found %d servers named '%s'", len(found), name))
	}

	rec := recordFromServer(&found[0])
	rec.Preferred = d.address

	d.log.V(1).Info("found server", "name", name, "id", found[0].ID, "address", rec.Address())
	return rec, nil
}

// clientWithContext returns a shallow copy of the compute client whose
// requests are bound to ctx. The shared client is left untouched.
func (d *Directory) clientWithContext(ctx context.Context) *gophercloud.ServiceClient {
	sc := *d.client
	pc := *d.client.ProviderClient
	pc.Context = ctx
	sc.ProviderClient = &pc
	return &sc
}

func classify(name string, err error) error {
	switch err.(type) {
	case gophercloud.ErrDefault404:
		return fmt.Errorf("%w: %s", directory.ErrNotFound, name)
	case gophercloud.ErrDefault400, gophercloud.ErrDefault401, gophercloud.ErrDefault403:
		return retry.Fatal(fmt.Errorf("failed to list servers named '%s': %w", name, err))
	default:
		return fmt.Errorf("failed to list servers named '%s': %w", name, err)
	}
}

// address is one entry of a server's "addresses" map.
type address struct {
	Addr    string
	Version int
	Type    string
}

func recordFromServer(s *servers.Server) *directory.NodeRecord {
	rec := &directory.NodeRecord{
		Name:       s.Name,
		PublicIPv4: s.AccessIPv4,
		PublicIPv6: s.AccessIPv6,
	}

	for _, a := range serverAddresses(s) {
		switch {
		case a.Version == 4 && a.Type == "floating":
			if rec.PublicIPv4 == "" {
				rec.PublicIPv4 = a.Addr
			}
		case a.Version == 4:
			if rec.PrivateIP == "" {
				rec.PrivateIP = a.Addr
			}
		case a.Version == 6:
			if rec.PublicIPv6 == "" {
				rec.PublicIPv6 = a.Addr
			}
		}
	}
	return rec
}

// serverAddresses flattens the untyped addresses map in network name order.
func serverAddresses(s *servers.Server) []address {
	networks := make([]string, 0, len(s.Addresses))
	for network := range s.Addresses {
		networks = append(networks, network)
	}
	sort.Strings(networks)

	var out []address
	for _, network := range networks {
		entries, ok := s.Addresses[network].([]interface{})
		if !ok {
			continue
		}
		for _, entry := range entries {
			m, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			a := address{}
			a.Addr, _ = m["addr"].(string)
			if v, ok := m["version"].(float64); ok {
				a.Version = int(v)
			}
			a.Type, _ = m["OS-EXT-IPS:type"].(string)
			if a.Addr != "" {
				out = append(out, a)
			}
		}
	}
	return out
}
