package topology

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/cvent/delivery-cluster/internal/config"
	"github.com/cvent/delivery-cluster/internal/directory"
	"github.com/cvent/delivery-cluster/internal/metrics"
	"github.com/cvent/delivery-cluster/internal/util/naming"
)

const defaultParallelism = 8

var errNoDirectory = errors.New("no node directory configured")

// Options tunes a Resolver.
type Options struct {
	Logger logr.Logger
	// Parallelism bounds concurrent resolutions in ResolveAll.
	Parallelism int
	Metrics     *metrics.Metrics
}

// Option is a functional option for Resolver configuration.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(log logr.Logger) Option {
	return func(o *Options) {
		o.Logger = log
	}
}

// WithParallelism bounds concurrent resolutions in ResolveAll. n below 1
// means unbounded.
func WithParallelism(n int) Option {
	return func(o *Options) {
		o.Parallelism = n
	}
}

// WithMetrics records every resolution outcome.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// Resolver answers hostname and address questions for one cluster configuration.
// The configuration must not be mutated while the resolver is in use.
type Resolver struct {
	cfg  *config.Config
	dir  directory.Directory
	opts Options
}

// New creates a Resolver. dir is only consulted for remote drivers and may be nil otherwise.
//
// cfg need not have been through ApplyDefaults: an empty driver resolves
// through the ssh connection table, as the loader would default it.
func New(cfg *config.Config, dir directory.Directory, opts ...Option) *Resolver {
	o := Options{
		Logger:      logr.Discard(),
		Parallelism: defaultParallelism,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Resolver{cfg: cfg, dir: dir, opts: o}
}

// Config returns the configuration the resolver was built with.
func (r *Resolver) Config() *config.Config {
	return r.cfg
}

// ResolveHostname returns the short hostname of a role instance.
// It never consults the node directory.
func (r *Resolver) ResolveHostname(role config.Role, index int) (string, error) {
	name, err := r.resolveHostname(role, index)
	r.observe(role, "hostname", err)
	if err != nil {
		return "", err
	}
	return name, nil
}

func (r *Resolver) resolveHostname(role config.Role, index int) (string, error) {
	section, err := r.section(role, index)
	if err != nil {
		return "", err
	}
	if section.Hostname != "" {
		return section.Hostname, nil
	}
	return r.generatedName(role, index), nil
}

// ResolveFQDN returns the address other nodes use to reach a role instance.
//
// Precedence: the role's fqdn, then its host, then the driver. The ssh and
// local drivers read the connection table; hcloud and openstack make exactly
// one node directory lookup. A failed driver lookup is returned as is.
func (r *Resolver) ResolveFQDN(ctx context.Context, role config.Role, index int) (string, error) {
	addr, source, err := r.resolveFQDN(ctx, role, index)
	r.observe(role, "fqdn", err)
	if err != nil {
		r.opts.Logger.V(1).Info("fqdn resolution failed", "role", role, "index", index, "error", err.Error())
		return "", err
	}
	r.opts.Logger.V(2).Info("resolved fqdn", "role", role, "index", index, "fqdn", addr, "source", source)
	return addr, nil
}

func (r *Resolver) resolveFQDN(ctx context.Context, role config.Role, index int) (addr, source string, err error) {
	section, err := r.section(role, index)
	if err != nil {
		return "", "", err
	}

	if section.FQDN != "" {
		return section.FQDN, "fqdn", nil
	}
	if section.Host != "" {
		return section.Host, "host", nil
	}

	switch r.cfg.Driver {
	case config.DriverSSH, config.DriverLocal, "":
		node, ok := r.cfg.SSH.Lookup(role, index)
		if !ok || node.IP == "" {
			return "", "", newError(ErrMissingConnectionData, role, index, nil)
		}
		return node.IP, "ssh", nil
	case config.DriverHCloud, config.DriverOpenStack:
		addr, err := r.lookup(ctx, role, index)
		return addr, "directory", err
	default:
		return "", "", newError(ErrMissingConnectionData, role, index,
			fmt.Errorf("%w %q", config.ErrUnknownDriver, r.cfg.Driver))
	}
}

// lookup asks the node directory for the record of a role instance.
// Singletons are looked up by their generated name and builders by their
// resolved hostname.
func (r *Resolver) lookup(ctx context.Context, role config.Role, index int) (string, error) {
	if r.dir == nil {
		return "", newError(ErrDirectoryLookupFailed, role, index, errNoDirectory)
	}

	key := r.generatedName(role, index)
	if role.Scalable() {
		name, err := r.resolveHostname(role, index)
		if err != nil {
			return "", err
		}
		key = name
	}

	rec, err := r.dir.GetNodeRecord(ctx, key)
	if err != nil {
		return "", newError(ErrDirectoryLookupFailed, role, index, fmt.Errorf("lookup of %s: %w", key, err))
	}
	addr := rec.Address()
	if addr == "" {
		return "", newError(ErrDirectoryLookupFailed, role, index, fmt.Errorf("node record %s has no address", key))
	}
	return addr, nil
}

// section checks presence, then the index, and returns the role's section.
func (r *Resolver) section(role config.Role, index int) (*config.RoleConfig, error) {
	section, ok := r.cfg.Section(role)
	if !ok {
		var cause error
		if _, err := config.ParseRole(string(role)); err != nil {
			cause = err
		}
		return nil, newError(ErrMissingRoleConfiguration, role, index, cause)
	}

	if role.Scalable() {
		if count := section.Count; index < 1 || index > count {
			return nil, newError(ErrInvalidIndex, role, index, fmt.Errorf("must be between 1 and %d", count))
		}
	} else if index != 0 {
		return nil, newError(ErrInvalidIndex, role, index, fmt.Errorf("%s is a single node and takes no index", role))
	}
	return section, nil
}

func (r *Resolver) generatedName(role config.Role, index int) string {
	if role.Scalable() {
		return naming.BuildNode(r.cfg.ID, index)
	}
	return naming.Server(role.NodePrefix(), r.cfg.ID)
}

func (r *Resolver) observe(role config.Role, kind string, err error) {
	r.opts.Metrics.ObserveResolution(string(role), kind, KindLabel(err))
}
