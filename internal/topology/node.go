package topology

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cvent/delivery-cluster/internal/config"
	"github.com/cvent/delivery-cluster/internal/util/async"
)

// Node is one resolved role instance. Err is set when either resolution failed;
// the other field may still be filled in.
type Node struct {
	Role     config.Role `json:"role"`
	Index    int         `json:"index,omitempty"`
	Hostname string      `json:"hostname,omitempty"`
	FQDN     string      `json:"fqdn,omitempty"`
	Err      error       `json:"-"`
}

// MarshalJSON renders Err as its message under "error".
func (n Node) MarshalJSON() ([]byte, error) {
	type plain Node
	out := struct {
		plain
		Error string `json:"error,omitempty"`
	}{plain: plain(n)}
	if n.Err != nil {
		out.Error = n.Err.Error()
	}
	return json.Marshal(out)
}

// Instances lists every (role, index) pair the configuration defines:
// present singletons with index 0, then builders 1..count.
func Instances(cfg *config.Config) []Node {
	var nodes []Node
	for _, role := range cfg.PresentRoles() {
		if !role.Scalable() {
			nodes = append(nodes, Node{Role: role})
			continue
		}
		for i := 1; i <= cfg.BuilderCount(); i++ {
			nodes = append(nodes, Node{Role: role, Index: i})
		}
	}
	return nodes
}

// ResolveAll resolves hostname and FQDN of every instance concurrently.
// Nodes come back in Instances order whether or not they failed; the
// returned error joins all per-node errors.
func (r *Resolver) ResolveAll(ctx context.Context) ([]Node, error) {
	nodes := async.Map(ctx, r.opts.Parallelism, Instances(r.cfg), func(ctx context.Context, n Node) Node {
		var err error
		if n.Hostname, err = r.ResolveHostname(n.Role, n.Index); err != nil {
			// FQDN resolution runs the same presence and index checks.
			n.Err = err
			return n
		}
		n.FQDN, n.Err = r.ResolveFQDN(ctx, n.Role, n.Index)
		return n
	})

	var errs []error
	for _, n := range nodes {
		if n.Err != nil {
			errs = append(errs, n.Err)
		}
	}
	return nodes, errors.Join(errs...)
}

// Document is the exported form of a resolved topology.
type Document struct {
	Cluster     string    `json:"cluster"`
	Driver      string    `json:"driver"`
	GeneratedAt time.Time `json:"generated_at"`
	Nodes       []Node    `json:"nodes"`
}

// NewDocument wraps resolved nodes for export.
func NewDocument(cfg *config.Config, nodes []Node, now time.Time) Document {
	return Document{
		Cluster:     cfg.ID,
		Driver:      string(cfg.Driver),
		GeneratedAt: now.UTC(),
		Nodes:       nodes,
	}
}
