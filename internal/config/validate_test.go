package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{
		ID:         "chefspec",
		ChefServer: &RoleConfig{},
		Delivery:   &RoleConfig{},
		Builders:   &RoleConfig{Count: 2},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing id",
			mutate:  func(c *Config) { c.ID = "" },
			wantErr: "id is required",
		},
		{
			name:    "id not a DNS label",
			mutate:  func(c *Config) { c.ID = "Chef_Spec" },
			wantErr: "invalid id",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Driver = "vagrant" },
			wantErr: "unknown driver",
		},
		{
			name:    "negative builder count",
			mutate:  func(c *Config) { c.Builders.Count = -1 },
			wantErr: "builders.count cannot be negative",
		},
		{
			name:    "count on a singleton",
			mutate:  func(c *Config) { c.Delivery.Count = 2 },
			wantErr: "delivery.count is only supported for builders",
		},
		{
			name:    "builders hostname",
			mutate:  func(c *Config) { c.Builders.Hostname = "builder" },
			wantErr: "builders.hostname is not supported",
		},
		{
			name:    "builders fqdn",
			mutate:  func(c *Config) { c.Builders.FQDN = "builder.example.com" },
			wantErr: "builders.fqdn is not supported",
		},
		{
			name:    "ssh port out of range",
			mutate:  func(c *Config) { c.SSH.Port = 70000 },
			wantErr: "ssh.port must be between 1 and 65535",
		},
		{
			name: "builders under ssh.nodes",
			mutate: func(c *Config) {
				c.SSH.Nodes = map[Role]SSHNode{RoleBuilders: {IP: "10.0.0.1"}}
			},
			wantErr: "use ssh.builders",
		},
		{
			name: "unknown role in ssh.nodes",
			mutate: func(c *Config) {
				c.SSH.Nodes = map[Role]SSHNode{"machines": {IP: "10.0.0.1"}}
			},
			wantErr: "unknown role",
		},
		{
			name: "zero builder index",
			mutate: func(c *Config) {
				c.SSH.Builders = map[int]SSHNode{0: {IP: "10.0.0.1"}}
			},
			wantErr: "index must be at least 1",
		},
		{
			name: "hcloud without token",
			mutate: func(c *Config) {
				c.Driver = DriverHCloud
				c.HCloud.Token = ""
			},
			wantErr: "hcloud.token",
		},
		{
			name:    "invalid address kind",
			mutate:  func(c *Config) { c.OpenStack.Address = "floating" },
			wantErr: "invalid openstack.address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.ID = ""
	cfg.Builders.Count = -3

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")
	assert.Contains(t, err.Error(), "builders.count cannot be negative")
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Driver: DriverOpenStack,
		SSH:    SSHConfig{Port: 2222},
		HCloud: HCloudConfig{Address: AddressPrivate},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, DriverOpenStack, cfg.Driver)
	assert.Equal(t, 2222, cfg.SSH.Port)
	assert.Equal(t, AddressPrivate, cfg.HCloud.Address)
	assert.Equal(t, AddressPublicIPv4, cfg.OpenStack.Address)
}
