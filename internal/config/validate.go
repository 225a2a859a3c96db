package config

import (
	"errors"
	"fmt"
	"regexp"
)

// clusterIDRegex keeps generated names valid DNS labels.
var clusterIDRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

var validAddressKinds = map[AddressKind]bool{
	AddressPublicIPv4: true,
	AddressPublicIPv6: true,
	AddressPrivate:    true,
}

// ApplyDefaults fills in unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.Driver == "" {
		c.Driver = DriverSSH
	}
	if c.SSH.Port == 0 {
		c.SSH.Port = 22
	}
	if c.HCloud.Address == "" {
		c.HCloud.Address = AddressPublicIPv4
	}
	if c.OpenStack.Address == "" {
		c.OpenStack.Address = AddressPublicIPv4
	}
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs []error

	if c.ID == "" {
		errs = append(errs, fmt.Errorf("id is required"))
	} else if !clusterIDRegex.MatchString(c.ID) {
		errs = append(errs, fmt.Errorf("invalid id %q: must be a lowercase DNS label", c.ID))
	}

	if _, err := ParseDriver(string(c.Driver)); err != nil {
		errs = append(errs, err)
	}

	errs = append(errs, c.validateRoles()...)
	errs = append(errs, c.validateSSH()...)

	if c.Driver == DriverHCloud && c.HCloud.Token == "" {
		errs = append(errs, fmt.Errorf("hcloud.token (or %s) is required for the hcloud driver", HCloudTokenEnv))
	}
	if !validAddressKinds[c.HCloud.Address] {
		errs = append(errs, fmt.Errorf("invalid hcloud.address %q", c.HCloud.Address))
	}
	if !validAddressKinds[c.OpenStack.Address] {
		errs = append(errs, fmt.Errorf("invalid openstack.address %q", c.OpenStack.Address))
	}

	return errors.Join(errs...)
}

// validateRoles checks per-role constraints.
func (c *Config) validateRoles() []error {
	var errs []error

	for _, role := range SingletonRoles() {
		rc, ok := c.Section(role)
		if ok && rc.Count != 0 {
			errs = append(errs, fmt.Errorf("%s.count is only supported for %s", role, RoleBuilders))
		}
	}

	if b := c.Builders; b != nil {
		if b.Count < 0 {
			errs = append(errs, fmt.Errorf("builders.count cannot be negative, got %d", b.Count))
		}
		// One value would be shared by every instance.
		if b.FQDN != "" {
			errs = append(errs, fmt.Errorf("builders.fqdn is not supported: instances are addressed individually"))
		}
		if b.Host != "" {
			errs = append(errs, fmt.Errorf("builders.host is not supported: instances are addressed individually"))
		}
		if b.Hostname != "" {
			errs = append(errs, fmt.Errorf("builders.hostname is not supported: instances use generated names"))
		}
	}

	return errs
}

// validateSSH checks the connection table.
func (c *Config) validateSSH() []error {
	var errs []error

	if c.SSH.Port < 1 || c.SSH.Port > 65535 {
		errs = append(errs, fmt.Errorf("ssh.port must be between 1 and 65535, got %d", c.SSH.Port))
	}
	for role, node := range c.SSH.Nodes {
		if role.Scalable() {
			errs = append(errs, fmt.Errorf("ssh.nodes.%s: use ssh.builders for indexed instances", role))
			continue
		}
		if _, err := ParseRole(string(role)); err != nil {
			errs = append(errs, fmt.Errorf("ssh.nodes: %w", err))
		}
		if node.Port < 0 || node.Port > 65535 {
			errs = append(errs, fmt.Errorf("ssh.nodes.%s.port out of range: %d", role, node.Port))
		}
	}
	for index, node := range c.SSH.Builders {
		if index < 1 {
			errs = append(errs, fmt.Errorf("ssh.builders: index must be at least 1, got %d", index))
		}
		if node.Port < 0 || node.Port > 65535 {
			errs = append(errs, fmt.Errorf("ssh.builders.%d.port out of range: %d", index, node.Port))
		}
	}

	return errs
}
