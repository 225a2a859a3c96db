package testing

import (
	"maps"

	"github.com/cvent/delivery-cluster/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a ConfigBuilder for cluster "chefspec" on the ssh driver
// with no roles configured.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: config.Config{
			ID:     "chefspec",
			Driver: config.DriverSSH,
			SSH: config.SSHConfig{
				User: "ubuntu",
				Port: 22,
			},
		},
	}
}

// WithID sets the cluster id.
func (b *ConfigBuilder) WithID(id string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.ID = id
	return newBuilder
}

// WithDriver sets the driver.
func (b *ConfigBuilder) WithDriver(driver config.Driver) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Driver = driver
	return newBuilder
}

// WithRole marks a role present with the given section.
func (b *ConfigBuilder) WithRole(role config.Role, rc config.RoleConfig) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.SetSection(role, &rc)
	return newBuilder
}

// WithoutRole marks a role absent.
func (b *ConfigBuilder) WithoutRole(role config.Role) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.SetSection(role, nil)
	return newBuilder
}

// WithBuilders marks the builders role present with count instances.
func (b *ConfigBuilder) WithBuilders(count int) *ConfigBuilder {
	return b.WithRole(config.RoleBuilders, config.RoleConfig{Count: count})
}

// WithSSHNode adds a connection table entry for a singleton role.
func (b *ConfigBuilder) WithSSHNode(role config.Role, ip string) *ConfigBuilder {
	newBuilder := b.clone()
	if newBuilder.cfg.SSH.Nodes == nil {
		newBuilder.cfg.SSH.Nodes = map[config.Role]config.SSHNode{}
	}
	newBuilder.cfg.SSH.Nodes[role] = config.SSHNode{IP: ip}
	return newBuilder
}

// WithSSHBuilder adds a connection table entry for the index-th builder.
func (b *ConfigBuilder) WithSSHBuilder(index int, ip string) *ConfigBuilder {
	newBuilder := b.clone()
	if newBuilder.cfg.SSH.Builders == nil {
		newBuilder.cfg.SSH.Builders = map[int]config.SSHNode{}
	}
	newBuilder.cfg.SSH.Builders[index] = config.SSHNode{IP: ip}
	return newBuilder
}

// WithHCloudToken sets the hcloud API token.
func (b *ConfigBuilder) WithHCloudToken(token string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.HCloud.Token = token
	return newBuilder
}

// Build returns the configuration with defaults applied.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.clone().cfg
	cfg.ApplyDefaults()
	return &cfg
}

// clone creates a deep copy of the builder.
func (b *ConfigBuilder) clone() *ConfigBuilder {
	newCfg := b.cfg

	for _, role := range config.Roles() {
		if rc, ok := b.cfg.Section(role); ok {
			copied := *rc
			newCfg.SetSection(role, &copied)
		}
	}
	newCfg.SSH.Nodes = maps.Clone(b.cfg.SSH.Nodes)
	newCfg.SSH.Builders = maps.Clone(b.cfg.SSH.Builders)

	return &ConfigBuilder{cfg: newCfg}
}

// ChefSpecConfig returns the reference cluster: every role present, three
// builders, and a full ssh connection table.
//
//	chef-server  hostname my-cool-hostname.chef-server.com, ssh 10.1.1.1
//	delivery     empty section, ssh 10.1.1.2
//	supermarket  host supermarket.chefspec.example.com
//	analytics    fqdn analytics.chefspec.example.com
//	splunk       empty section, no ssh entry
//	builders     count 3, ssh 10.1.2.1..3
func ChefSpecConfig() *config.Config {
	return NewConfigBuilder().
		WithRole(config.RoleChefServer, config.RoleConfig{Hostname: "my-cool-hostname.chef-server.com"}).
		WithRole(config.RoleDelivery, config.RoleConfig{}).
		WithRole(config.RoleSupermarket, config.RoleConfig{Host: "supermarket.chefspec.example.com"}).
		WithRole(config.RoleAnalytics, config.RoleConfig{FQDN: "analytics.chefspec.example.com"}).
		WithRole(config.RoleSplunk, config.RoleConfig{}).
		WithBuilders(3).
		WithSSHNode(config.RoleChefServer, "10.1.1.1").
		WithSSHNode(config.RoleDelivery, "10.1.1.2").
		WithSSHBuilder(1, "10.1.2.1").
		WithSSHBuilder(2, "10.1.2.2").
		WithSSHBuilder(3, "10.1.2.3").
		Build()
}
