package config

import (
	"errors"
	"fmt"
)

// ErrUnknownRole is returned when a role name is not part of the cluster topology.
var ErrUnknownRole = errors.New("unknown role")

// Role identifies a logical position in the cluster topology.
type Role string

const (
	RoleChefServer  Role = "chef-server"
	RoleDelivery    Role = "delivery"
	RoleSupermarket Role = "supermarket"
	RoleAnalytics   Role = "analytics"
	RoleSplunk      Role = "splunk"
	RoleBuilders    Role = "builders"
)

var allRoles = []Role{
	RoleChefServer,
	RoleDelivery,
	RoleSupermarket,
	RoleAnalytics,
	RoleSplunk,
	RoleBuilders,
}

// Roles returns every role in topology order.
func Roles() []Role {
	return append([]Role(nil), allRoles...)
}

// SingletonRoles returns the roles that have exactly one node.
func SingletonRoles() []Role {
	return append([]Role(nil), allRoles[:len(allRoles)-1]...)
}

// ParseRole converts a role name into a Role.
func ParseRole(s string) (Role, error) {
	for _, r := range allRoles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of %v", ErrUnknownRole, s, allRoles)
}

// Scalable reports whether the role is backed by an indexed pool of nodes.
func (r Role) Scalable() bool {
	return r == RoleBuilders
}

// NodePrefix returns the prefix of generated node names for the role.
//
// The control plane is already called "chef-server", so its generated name
// is "chef-server-<id>" rather than "chef-server-server-<id>".
func (r Role) NodePrefix() string {
	switch r {
	case RoleChefServer:
		return "chef-server"
	case RoleBuilders:
		return "build-node"
	default:
		return string(r) + "-server"
	}
}

func (r Role) String() string {
	return string(r)
}
