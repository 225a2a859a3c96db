package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/mattn/go-isatty"

	"github.com/cvent/delivery-cluster/internal/config"
	"github.com/cvent/delivery-cluster/internal/directory"
	"github.com/cvent/delivery-cluster/internal/metrics"
	"github.com/cvent/delivery-cluster/internal/platform/hcloud"
	"github.com/cvent/delivery-cluster/internal/platform/openstack"
	"github.com/cvent/delivery-cluster/internal/topology"
	"github.com/cvent/delivery-cluster/internal/util/retry"
)

// Globals carries the settings shared by every command.
type Globals struct {
	ConfigPath      string
	Verbosity       int
	MetricsTextfile string
	// Parallelism bounds concurrent lookups and SSH sessions. Below 1 means unbounded.
	Parallelism     int

	Log     logr.Logger
	Metrics *metrics.Metrics
}

// NewGlobals builds the logger and metrics registry for one CLI run.
func NewGlobals(configPath string, verbosity int, metricsTextfile string) Globals {
	g := Globals{
		ConfigPath:      configPath,
		Verbosity:       verbosity,
		MetricsTextfile: metricsTextfile,
		Log:             newLogger(verbosity),
	}
	if metricsTextfile != "" {
		g.Metrics = metrics.New()
	}
	return g
}

// Finish writes the metrics textfile, if requested, and joins any failure with err.
func (g Globals) Finish(err error) error {
	if g.MetricsTextfile == "" {
		return err
	}
	return errors.Join(err, g.Metrics.WriteTextfile(g.MetricsTextfile))
}

// newLogger returns a stderr logger; verbosity 0 logs errors and V(0) messages only.
func newLogger(verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{
		Verbosity:    verbosity,
		LogTimestamp: verbosity > 1,
	})
}

// Factory function variables - can be replaced in tests.
var (
	// newHCloudDirectory creates the Hetzner Cloud node directory.
	newHCloudDirectory = func(cfg config.HCloudConfig, log logr.Logger) (directory.Directory, error) {
		return hcloud.NewDirectory(cfg, hcloud.WithLogger(log)), nil
	}

	// newOpenStackDirectory creates the OpenStack node directory.
	newOpenStackDirectory = func(cfg config.OpenStackConfig, log logr.Logger) (directory.Directory, error) {
		return openstack.NewDirectory(cfg, openstack.WithLogger(log))
	}
)

// loadConfig loads and validates the cluster configuration.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return nil, fmt.Errorf("no config file given\nRun 'delivery-cluster init' to create one")
	}
	return config.LoadFile(path)
}

// newDirectory wires the node directory of a remote driver with retry,
// optional memoization, metrics and a per-lookup timeout.
// Local drivers get a nil directory.
func newDirectory(cfg *config.Config, g Globals, timeouts *config.Timeouts) (directory.Directory, error) {
	var (
		dir directory.Directory
		err error
	)
	switch cfg.Driver {
	case config.DriverHCloud:
		dir, err = newHCloudDirectory(cfg.HCloud, g.Log.WithName("hcloud"))
	case config.DriverOpenStack:
		dir, err = newOpenStackDirectory(cfg.OpenStack, g.Log.WithName("openstack"))
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s node directory: %w", cfg.Driver, err)
	}

	dir = withTimeout(dir, timeouts.DirectoryLookup)
	dir = directory.WithRetry(dir,
		retry.WithMaxRetries(timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(timeouts.RetryInitialDelay),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			g.Log.V(1).Info("directory lookup failed, retrying", "attempt", attempt, "delay", delay, "error", err.Error())
		}),
	)
	dir = directory.WithMetrics(dir, string(cfg.Driver), g.Metrics)
	if cfg.Directory.Cache {
		dir = directory.WithCache(dir)
	}
	return dir, nil
}

// withTimeout bounds every single lookup attempt.
func withTimeout(d directory.Directory, timeout time.Duration) directory.Directory {
	if timeout <= 0 {
		return d
	}
	return directory.Func(func(ctx context.Context, name string) (*directory.NodeRecord, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return d.GetNodeRecord(ctx, name)
	})
}

// newResolver loads the configuration and builds a resolver for it.
func newResolver(g Globals) (*topology.Resolver, error) {
	cfg, err := loadConfig(g.ConfigPath)
	if err != nil {
		return nil, err
	}

	dir, err := newDirectory(cfg, g, config.LoadTimeouts())
	if err != nil {
		return nil, err
	}

	return topology.New(cfg, dir,
		topology.WithLogger(g.Log.WithName("topology")),
		topology.WithMetrics(g.Metrics),
		topology.WithParallelism(g.Parallelism),
	), nil
}

// isInteractiveTTY reports whether stdout is a terminal.
func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
