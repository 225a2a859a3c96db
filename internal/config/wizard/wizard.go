package wizard

import (
	"context"
	"fmt"

	"github.com/cvent/delivery-cluster/internal/config"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	ID     string
	Driver string

	// Roles lists the singleton roles to deploy.
	Roles        []string
	BuilderCount int

	// SSH defaults; only asked for the ssh and local drivers.
	SSHUser    string
	SSHKeyFile string
}

// DefaultResult returns the answers preselected in the form.
func DefaultResult(id string) *WizardResult {
	return &WizardResult{
		ID:     id,
		Driver: string(config.DriverSSH),
		Roles: []string{
			string(config.RoleChefServer),
			string(config.RoleDelivery),
		},
		BuilderCount: 1,
		SSHUser:      "root",
		SSHKeyFile:   "~/.ssh/id_rsa",
	}
}

// RunWizard runs the interactive configuration wizard starting from defaults.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context, defaults *WizardResult) (*WizardResult, error) {
	result := *defaults
	result.Roles = append([]string(nil), defaults.Roles...)

	if err := runIdentityGroup(ctx, &result); err != nil {
		return nil, fmt.Errorf("cluster identity: %w", err)
	}

	if err := runRolesGroup(ctx, &result); err != nil {
		return nil, fmt.Errorf("roles: %w", err)
	}

	driver := config.Driver(result.Driver)
	if !driver.Remote() {
		if err := runSSHGroup(ctx, &result); err != nil {
			return nil, fmt.Errorf("ssh access: %w", err)
		}
	}

	return &result, nil
}
