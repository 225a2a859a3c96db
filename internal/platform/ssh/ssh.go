package ssh

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/crypto/ssh"

	"github.com/cvent/delivery-cluster/internal/util/retry"
)

const (
	defaultPort        = 22
	defaultDialTimeout = 10 * time.Second
	defaultMaxRetries  = 3
	defaultRetryDelay  = 500 * time.Millisecond
	defaultMaxDelay    = 5 * time.Second
)

// Config holds SSH client configuration shared by every target.
type Config struct {
	PrivateKey []byte

	// DialTimeout bounds the TCP connect and handshake of one attempt.
	DialTimeout time.Duration
	MaxRetries  int
	RetryDelay  time.Duration

	// HostKeyCallback handles host key verification.
	// If nil, ssh.InsecureIgnoreHostKey() is used.
	HostKeyCallback ssh.HostKeyCallback

	Log logr.Logger
}

// Target is one node to connect to.
type Target struct {
	Host string
	Port int
	User string
}

func (t Target) addr() string {
	port := t.Port
	if port == 0 {
		port = defaultPort
	}
	return net.JoinHostPort(t.Host, strconv.Itoa(port))
}

// Client executes commands on cluster nodes.
// The private key is parsed once; connections are made per Execute call.
type Client struct {
	config Config
	signer ssh.Signer
}

// NewClient validates the configuration and parses the private key.
func NewClient(cfg Config) (*Client, error) {
	if len(cfg.PrivateKey) == 0 {
		return nil, fmt.Errorf("config private key cannot be empty")
	}

	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.HostKeyCallback == nil {
		cfg.HostKeyCallback = ssh.InsecureIgnoreHostKey() //nolint:gosec // nodes are addressed by IP from the topology
	}
	if cfg.Log.GetSink() == nil {
		cfg.Log = logr.Discard()
	}

	signer, err := ssh.ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &Client{config: cfg, signer: signer}, nil
}

// Execute runs a command on the target and returns its combined output.
func (c *Client) Execute(ctx context.Context, target Target, command string) (string, error) {
	if target.Host == "" {
		return "", fmt.Errorf("target host cannot be empty")
	}
	if target.User == "" {
		return "", fmt.Errorf("target user cannot be empty")
	}

	client, err := c.connect(ctx, target)
	if err != nil {
		return "", err
	}
	defer func() { _ = client.Close() }()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create SSH session on %s: %w", target.Host, err)
	}
	defer func() { _ = session.Close() }()

	output, err := session.CombinedOutput(command)
	if err != nil {
		return string(output), fmt.Errorf("command failed on %s: %w\nCommand: %s\nOutput: %s",
			target.Host, err, command, string(output))
	}
	return string(output), nil
}

// Hostname returns the output of `hostname` on the target, trimmed.
func (c *Client) Hostname(ctx context.Context, target Target) (string, error) {
	out, err := c.Execute(ctx, target, "hostname")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// connect dials the target with retry. Authentication failures are not retried.
func (c *Client) connect(ctx context.Context, target Target) (*ssh.Client, error) {
	clientConfig := &ssh.ClientConfig{
		User:            target.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(c.signer)},
		HostKeyCallback: c.config.HostKeyCallback,
		Timeout:         c.config.DialTimeout,
	}
	addr := target.addr()

	client, err := retry.Value(ctx, func() (*ssh.Client, error) {
		return c.dial(ctx, addr, clientConfig)
	},
		retry.WithMaxRetries(c.config.MaxRetries),
		retry.WithInitialDelay(c.config.RetryDelay),
		retry.WithMaxDelay(defaultMaxDelay),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			c.config.Log.V(1).Info("ssh dial failed, retrying", "addr", addr, "attempt", attempt, "delay", delay, "error", err.Error())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to establish SSH connection to %s: %w", addr, err)
	}
	return client, nil
}

func (c *Client) dial(ctx context.Context, addr string, clientConfig *ssh.ClientConfig) (*ssh.Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, c.config.DialTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	if deadline, ok := dialCtx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, clientConfig)
	if err != nil {
		_ = conn.Close()
		if strings.Contains(err.Error(), "unable to authenticate") {
			return nil, retry.Fatal(err)
		}
		return nil, err
	}
	_ = conn.SetDeadline(time.Time{})

	return ssh.NewClient(sshConn, chans, reqs), nil
}
