package config

import (
	"errors"
	"fmt"
)

// ErrUnknownDriver is returned for driver names the resolver cannot dispatch on.
var ErrUnknownDriver = errors.New("unknown driver")

// Driver selects how node addresses are resolved when a role does not pin one.
type Driver string

const (
	// DriverSSH reads addresses from the SSH connection table.
	DriverSSH Driver = "ssh"
	// DriverLocal behaves like DriverSSH; nodes are pre-provisioned machines.
	DriverLocal Driver = "local"
	// DriverHCloud looks nodes up by name in Hetzner Cloud.
	DriverHCloud Driver = "hcloud"
	// DriverOpenStack looks nodes up by name in OpenStack Compute.
	DriverOpenStack Driver = "openstack"
)

var allDrivers = []Driver{DriverSSH, DriverLocal, DriverHCloud, DriverOpenStack}

// ParseDriver converts a driver name into a Driver.
func ParseDriver(s string) (Driver, error) {
	for _, d := range allDrivers {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of %v", ErrUnknownDriver, s, allDrivers)
}

// Remote reports whether addresses come from a remote node directory.
func (d Driver) Remote() bool {
	return d == DriverHCloud || d == DriverOpenStack
}

func (d Driver) String() string {
	return string(d)
}
