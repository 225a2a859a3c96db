package hcloud

import (
	"context"
	"fmt"
	"net"

	"github.com/go-logr/logr"
	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/cvent/delivery-cluster/internal/config"
	"github.com/cvent/delivery-cluster/internal/directory"
)

// Directory resolves node records from Hetzner Cloud servers.
type Directory struct {
	client  *hcloud.Client
	address config.AddressKind
	log     logr.Logger
}

// Option configures a Directory.
type Option func(*Directory)

// WithHCloudClient sets a custom hcloud client (useful for testing).
func WithHCloudClient(c *hcloud.Client) Option {
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

// NewDirectory creates a Directory from the hcloud section of the cluster config.
func NewDirectory(cfg config.HCloudConfig, opts ...Option) *Directory {
	clientOpts := []hcloud.ClientOption{
		hcloud.WithToken(cfg.Token),
		hcloud.WithApplication("delivery-cluster", ""),
	}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, hcloud.WithEndpoint(cfg.Endpoint))
	}

	d := &Directory{
		client:  hcloud.NewClient(clientOpts...),
		address: cfg.Address,
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// GetNodeRecord implements directory.Directory.
func (d *Directory) GetNodeRecord(ctx context.Context, name string) (*directory.NodeRecord, error) {
	d.log.V(1).Info("looking up server", "name", name)

	server, _, err := d.client.Server.Get(ctx, name)
	if err != nil {
		return nil, d.failure(name, err)
	}
	if server == nil {
		return nil, fmt.Errorf("%w: %s", directory.ErrNotFound, name)
	}

	rec := &directory.NodeRecord{
		Name:      server.Name,
		Preferred: d.address,
	}
	if ip := server.PublicNet.IPv4.IP; ip != nil && !ip.IsUnspecified() {
		rec.PublicIPv4 = ip.String()
	}
	if ip := hostIPv6(server.PublicNet.IPv6); ip != nil {
		rec.PublicIPv6 = ip.String()
	}
	for _, pn := range server.PrivateNet {
		if pn.IP != nil {
			rec.PrivateIP = pn.IP.String()
			break
		}
	}

	d.log.V(1).Info("found server", "name", name, "id", server.ID, "address", rec.Address())
	return rec, nil
}

// failure logs transient API conditions before classifying err.
func (d *Directory) failure(name string, err error) error {
	switch {
	case isRateLimited(err):
		d.log.Info("rate limited by the Hetzner Cloud API", "name", name)
	case isResourceLocked(err):
		d.log.V(1).Info("server is locked by a running action", "name", name)
	}
	return classify(name, err)
}

// hostIPv6 returns the first host address of the server's public IPv6 network.
// The API reports the network address; servers answer on <network>::1.
func hostIPv6(v6 hcloud.ServerPublicNetIPv6) net.IP {
	if v6.IP == nil || v6.IP.IsUnspecified() {
		return nil
	}
	ip := make(net.IP, len(v6.IP.To16()))
	copy(ip, v6.IP.To16())
	if v6.Network != nil && !ip.Equal(v6.Network.IP) {
		return ip
	}
	ip[len(ip)-1] |= 1
	return ip
}
