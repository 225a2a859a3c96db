package config

// Config is the desired topology of a delivery cluster.
type Config struct {
	// ID is the cluster identity token interpolated into generated names,
	// e.g. an environment or run identifier.
	ID     string `yaml:"id"`
	Driver Driver `yaml:"driver"`

	ChefServer  *RoleConfig `yaml:"chef-server,omitempty"`
	Delivery    *RoleConfig `yaml:"delivery,omitempty"`
	Supermarket *RoleConfig `yaml:"supermarket,omitempty"`
	Analytics   *RoleConfig `yaml:"analytics,omitempty"`
	Splunk      *RoleConfig `yaml:"splunk,omitempty"`
	Builders    *RoleConfig `yaml:"builders,omitempty"`

	SSH       SSHConfig       `yaml:"ssh,omitempty"`
	HCloud    HCloudConfig    `yaml:"hcloud,omitempty"`
	OpenStack OpenStackConfig `yaml:"openstack,omitempty"`
	Directory DirectoryConfig `yaml:"directory,omitempty"`
}

// RoleConfig is the per-role section. Empty strings mean "not set".
type RoleConfig struct {
	// FQDN pins the address of the role. Highest priority.
	FQDN string `yaml:"fqdn,omitempty"`
	// Host pins a host name or IP when FQDN is unset.
	Host string `yaml:"host,omitempty"`
	// Hostname overrides the generated short name.
	Hostname string `yaml:"hostname,omitempty"`
	// Count is the number of instances; builders only.
	Count int `yaml:"count,omitempty"`
}

// SSHConfig is the connection table used by the ssh and local drivers.
type SSHConfig struct {
	User    string `yaml:"user,omitempty"`
	KeyFile string `yaml:"key_file,omitempty"`
	Port    int    `yaml:"port,omitempty"`

	// Nodes holds one entry per singleton role.
	Nodes map[Role]SSHNode `yaml:"nodes,omitempty"`
	// Builders holds one entry per builder instance, keyed by 1-based index.
	Builders map[int]SSHNode `yaml:"builders,omitempty"`
}

// SSHNode is a single connection table entry.
type SSHNode struct {
	IP   string `yaml:"ip"`
	User string `yaml:"user,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// AddressKind selects which address of a remote node record is authoritative.
type AddressKind string

const (
	AddressPublicIPv4 AddressKind = "public-ipv4"
	AddressPublicIPv6 AddressKind = "public-ipv6"
	AddressPrivate    AddressKind = "private"
)

// HCloudConfig configures the Hetzner Cloud node directory.
type HCloudConfig struct {
	// Token is the API token. HCLOUD_TOKEN takes over when empty.
	Token   string      `yaml:"token,omitempty"`
	Address AddressKind `yaml:"address,omitempty"`
	// Endpoint overrides the API endpoint, mostly for testing.
	Endpoint string `yaml:"endpoint,omitempty"`
}

// OpenStackConfig configures the OpenStack node directory.
// Credentials are read from the OS_* environment.
type OpenStackConfig struct {
	Region  string      `yaml:"region,omitempty"`
	Address AddressKind `yaml:"address,omitempty"`
}

// DirectoryConfig holds collaborator-side lookup behavior.
type DirectoryConfig struct {
	// Cache memoizes successful lookups for the lifetime of the process.
	Cache bool `yaml:"cache,omitempty"`
}

// Section returns the configuration section of a role and whether it is present.
// A present section may be entirely empty.
func (c *Config) Section(role Role) (*RoleConfig, bool) {
	var rc *RoleConfig
	switch role {
	case RoleChefServer:
		rc = c.ChefServer
	case RoleDelivery:
		rc = c.Delivery
	case RoleSupermarket:
		rc = c.Supermarket
	case RoleAnalytics:
		rc = c.Analytics
	case RoleSplunk:
		rc = c.Splunk
	case RoleBuilders:
		rc = c.Builders
	}
	return rc, rc != nil
}

// SetSection replaces the section of a role. A nil section marks the role absent.
func (c *Config) SetSection(role Role, rc *RoleConfig) {
	switch role {
	case RoleChefServer:
		c.ChefServer = rc
	case RoleDelivery:
		c.Delivery = rc
	case RoleSupermarket:
		c.Supermarket = rc
	case RoleAnalytics:
		c.Analytics = rc
	case RoleSplunk:
		c.Splunk = rc
	case RoleBuilders:
		c.Builders = rc
	}
}

// PresentRoles returns the roles whose section is present, in topology order.
func (c *Config) PresentRoles() []Role {
	var roles []Role
	for _, r := range allRoles {
		if _, ok := c.Section(r); ok {
			roles = append(roles, r)
		}
	}
	return roles
}

// BuilderCount returns the configured number of builders, 0 when the section is absent.
func (c *Config) BuilderCount() int {
	if c.Builders == nil {
		return 0
	}
	return c.Builders.Count
}

// Lookup returns the connection entry for a role instance.
// Singleton roles use index 0; builders use their 1-based index.
func (s *SSHConfig) Lookup(role Role, index int) (SSHNode, bool) {
	var (
		node SSHNode
		ok   bool
	)
	if role.Scalable() {
		node, ok = s.Builders[index]
	} else {
		node, ok = s.Nodes[role]
	}
	if !ok {
		return SSHNode{}, false
	}
	if node.User == "" {
		node.User = s.User
	}
	if node.Port == 0 {
		node.Port = s.Port
	}
	return node, true
}
