package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"github.com/samber/lo"

	"github.com/cvent/delivery-cluster/internal/config"
	"github.com/cvent/delivery-cluster/internal/platform/ssh"
	"github.com/cvent/delivery-cluster/internal/topology"
	"github.com/cvent/delivery-cluster/internal/util/async"
)

// hostnameReader reads the hostname of a remote node.
type hostnameReader interface {
	Hostname(ctx context.Context, target ssh.Target) (string, error)
}

// Factory function variables for verify - can be replaced in tests.
var (
	// readKeyFile reads the SSH private key.
	readKeyFile = os.ReadFile

	// newHostnameReader creates the SSH client.
	newHostnameReader = func(key []byte, timeouts *config.Timeouts, log logr.Logger) (hostnameReader, error) {
		return ssh.NewClient(ssh.Config{
			PrivateKey:  key,
			DialTimeout: timeouts.SSHDial,
			MaxRetries:  timeouts.RetryMaxAttempts,
			RetryDelay:  timeouts.RetryInitialDelay,
			Log:         log,
		})
	}
)

var (
	verifyOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	verifyFailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	verifyDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// verifyResult is the outcome of checking one node.
type verifyResult struct {
	node   topology.Node
	remote string
	err    error
}

// Verify connects to every node over SSH and compares the remote hostname
// with the resolved one.
func Verify(ctx context.Context, g Globals) error {
	r, err := newResolver(g)
	if err != nil {
		return err
	}
	cfg := r.Config()

	if cfg.SSH.KeyFile == "" {
		return fmt.Errorf("ssh.key_file is required for verify")
	}
	key, err := readKeyFile(expandHome(cfg.SSH.KeyFile))
	if err != nil {
		return fmt.Errorf("failed to read ssh key: %w", err)
	}

	timeouts := config.LoadTimeouts()
	hosts, err := newHostnameReader(key, timeouts, g.Log.WithName("ssh"))
	if err != nil {
		return err
	}

	// Unresolved nodes keep their Err and are reported below without dialing.
	nodes, resolveErr := r.ResolveAll(ctx)
	if resolveErr != nil {
		g.Log.V(1).Info("some nodes did not resolve", "error", resolveErr.Error())
	}

	results := async.Map(ctx, g.Parallelism, nodes, func(ctx context.Context, n topology.Node) verifyResult {
		return checkNode(ctx, hosts, cfg, n)
	})

	fmt.Printf("Verifying %d nodes of %s\n\n", len(results), cfg.ID)
	var errs []error
	for _, res := range results {
		fmt.Println(renderVerifyLine(res))
		if res.err != nil {
			errs = append(errs, res.err)
		}
	}
	fmt.Println()

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d nodes failed verification: %w", len(errs), len(results), errors.Join(errs...))
	}
	fmt.Println(verifyOKStyle.Render("All nodes verified"))
	return nil
}

// checkNode checks one node. Resolution failures are reported without dialing.
func checkNode(ctx context.Context, hosts hostnameReader, cfg *config.Config, n topology.Node) verifyResult {
	if n.Err != nil {
		return verifyResult{node: n, err: n.Err}
	}

	target := ssh.Target{Host: n.FQDN, User: cfg.SSH.User, Port: cfg.SSH.Port}
	if entry, ok := cfg.SSH.Lookup(n.Role, n.Index); ok {
		target.User, target.Port = entry.User, entry.Port
	}

	remote, err := hosts.Hostname(ctx, target)
	if err != nil {
		return verifyResult{node: n, err: fmt.Errorf("%s: %w", instanceLabel(n), err)}
	}
	if remote != n.Hostname {
		return verifyResult{node: n, remote: remote, err: fmt.Errorf("%s: hostname mismatch: expected %q, got %q", instanceLabel(n), n.Hostname, remote)}
	}
	return verifyResult{node: n, remote: remote}
}

func renderVerifyLine(res verifyResult) string {
	label := instanceLabel(res.node)
	switch {
	case res.err == nil:
		return fmt.Sprintf("  %s %s %s", verifyOKStyle.Render("✓"), label, verifyDimStyle.Render(res.node.FQDN))
	case res.remote != "":
		return fmt.Sprintf("  %s %s %s", verifyFailStyle.Render("✗"), label,
			verifyFailStyle.Render(fmt.Sprintf("remote hostname %q", res.remote)))
	default:
		return fmt.Sprintf("  %s %s %s", verifyFailStyle.Render("✗"), label, verifyDimStyle.Render(res.err.Error()))
	}
}

func instanceLabel(n topology.Node) string {
	return lo.Ternary(n.Index > 0, fmt.Sprintf("%s[%d]", n.Role, n.Index), n.Role.String())
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
