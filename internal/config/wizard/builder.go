package wizard

import "github.com/cvent/delivery-cluster/internal/config"

// BuildConfig creates a Config from the wizard result. Unknown role names are skipped.
func BuildConfig(result *WizardResult) *config.Config {
	cfg := &config.Config{
		ID:     result.ID,
		Driver: config.Driver(result.Driver),
	}

	for _, name := range result.Roles {
		role, err := config.ParseRole(name)
		if err != nil || role.Scalable() {
			continue
		}
		cfg.SetSection(role, &config.RoleConfig{})
	}
	if result.BuilderCount > 0 {
		cfg.Builders = &config.RoleConfig{Count: result.BuilderCount}
	}

	if !cfg.Driver.Remote() {
		cfg.SSH.User = result.SSHUser
		cfg.SSH.KeyFile = result.SSHKeyFile
	}

	cfg.ApplyDefaults()
	return cfg
}
