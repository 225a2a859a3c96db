package topology

import (
	"errors"

	"github.com/cvent/delivery-cluster/internal/config"
)

// RequireRoles asserts that every named role has a section in cfg.
// One ErrMissingRoleConfiguration is reported per missing role.
func RequireRoles(cfg *config.Config, roles ...config.Role) error {
	var errs []error
	for _, role := range roles {
		if _, ok := cfg.Section(role); !ok {
			errs = append(errs, newError(ErrMissingRoleConfiguration, role, 0, nil))
		}
	}
	return errors.Join(errs...)
}
