package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvent/delivery-cluster/internal/config"
	"github.com/cvent/delivery-cluster/internal/directory"
	testutil "github.com/cvent/delivery-cluster/internal/testing"
)

const sshClusterConfig = `
id: chefspec
driver: ssh
chef-server:
  hostname: my-cool-hostname.chef-server.com
delivery: {}
supermarket:
  host: supermarket.chefspec.example.com
builders:
  count: 2
ssh:
  user: ubuntu
  key_file: /tmp/delivery-cluster-test-key
  nodes:
    chef-server: {ip: 10.1.1.1}
    delivery: {ip: 10.1.1.2}
  builders:
    1: {ip: 10.1.2.1}
    2: {ip: 10.1.2.2, port: 2222}
`

const hcloudClusterConfig = `
id: chefspec
driver: hcloud
hcloud:
  token: test-token
chef-server: {}
builders:
  count: 1
`

// captureOutput captures stdout during function execution.
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// writeClusterConfig writes content to a temporary config file.
func writeClusterConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "delivery-cluster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// testGlobals returns quiet globals for the config at path.
func testGlobals(path string) Globals {
	return Globals{ConfigPath: path, Log: logr.Discard()}
}

// stubHCloudDirectory replaces the hcloud factory with dir for the test.
func stubHCloudDirectory(t *testing.T, dir directory.Directory) {
	t.Helper()
	orig := newHCloudDirectory
	t.Cleanup(func() { newHCloudDirectory = orig })
	newHCloudDirectory = func(config.HCloudConfig, logr.Logger) (directory.Directory, error) {
		return dir, nil
	}
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := loadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivery-cluster init")
}

func TestNewGlobals(t *testing.T) {
	g := NewGlobals("c.yaml", 1, "")
	assert.Equal(t, "c.yaml", g.ConfigPath)
	assert.Nil(t, g.Metrics)
	assert.NoError(t, g.Finish(nil))

	g = NewGlobals("c.yaml", 0, filepath.Join(t.TempDir(), "m.prom"))
	assert.NotNil(t, g.Metrics)
}

func TestGlobals_Finish_WritesTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "delivery-cluster.prom")
	g := NewGlobals("c.yaml", 0, path)
	g.Metrics.ObserveResolution("delivery", "hostname", "ok")

	cause := errors.New("boom")
	err := g.Finish(cause)
	assert.ErrorIs(t, err, cause)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "delivery_cluster_topology_resolutions_total")
}

func TestNewDirectory_LocalDriversHaveNone(t *testing.T) {
	cfg := testutil.ChefSpecConfig()

	dir, err := newDirectory(cfg, testGlobals(""), config.LoadTimeouts())
	require.NoError(t, err)
	assert.Nil(t, dir)
}

func TestNewDirectory_HCloud(t *testing.T) {
	stubHCloudDirectory(t, directory.NewStatic(directory.NodeRecord{
		Name:       "chef-server-chefspec",
		PublicIPv4: "203.0.113.10",
	}))

	cfg := testutil.NewConfigBuilder().
		WithDriver(config.DriverHCloud).
		WithHCloudToken("token").
		WithRole(config.RoleChefServer, config.RoleConfig{}).
		Build()
	cfg.Directory.Cache = true

	dir, err := newDirectory(cfg, testGlobals(""), &config.Timeouts{
		DirectoryLookup:   time.Second,
		RetryMaxAttempts:  1,
		RetryInitialDelay: time.Millisecond,
	})
	require.NoError(t, err)
	require.NotNil(t, dir)

	rec, err := dir.GetNodeRecord(context.Background(), "chef-server-chefspec")
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.10", rec.Address())

	_, err = dir.GetNodeRecord(context.Background(), "delivery-server-chefspec")
	assert.ErrorIs(t, err, directory.ErrNotFound)
}

func TestNewDirectory_FactoryError(t *testing.T) {
	orig := newOpenStackDirectory
	t.Cleanup(func() { newOpenStackDirectory = orig })
	newOpenStackDirectory = func(config.OpenStackConfig, logr.Logger) (directory.Directory, error) {
		return nil, errors.New("no OS_AUTH_URL")
	}

	cfg := testutil.NewConfigBuilder().WithDriver(config.DriverOpenStack).Build()
	_, err := newDirectory(cfg, testGlobals(""), config.LoadTimeouts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create openstack node directory")
}

func TestWithTimeout(t *testing.T) {
	slow := directory.Func(func(ctx context.Context, name string) (*directory.NodeRecord, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	_, err := withTimeout(slow, 10*time.Millisecond).GetNodeRecord(context.Background(), "n")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
