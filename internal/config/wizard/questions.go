package wizard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/samber/lo"

	"github.com/cvent/delivery-cluster/internal/config"
)

// maxBuilders caps the pool size offered by the form.
const maxBuilders = 64

// runIdentityGroup prompts for the cluster id and driver.
func runIdentityGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster ID").
				Description("Lowercase DNS label used in every generated node name").
				Value(&result.ID).
				Validate(validateID),
			huh.NewSelect[string]().
				Title("Driver").
				Description("How node addresses are found when a role does not pin one").
				Options(driverOptions()...).
				Value(&result.Driver),
		).Title("Cluster Identity"),
	).RunWithContext(ctx)
}

// runRolesGroup prompts for the roles to deploy and the builder pool size.
func runRolesGroup(ctx context.Context, result *WizardResult) error {
	count := strconv.Itoa(result.BuilderCount)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Roles").
				Description("Singleton servers to deploy").
				Options(roleOptions(result.Roles)...).
				Value(&result.Roles),
			huh.NewInput().
				Title("Build Nodes").
				Description(fmt.Sprintf("Number of build nodes (0-%d)", maxBuilders)).
				Value(&count).
				Validate(validateCount),
		).Title("Topology"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.BuilderCount, _ = strconv.Atoi(count)
	return nil
}

// runSSHGroup prompts for connection defaults.
func runSSHGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("SSH User").
				Value(&result.SSHUser),
			huh.NewInput().
				Title("SSH Key File").
				Description("Private key used to reach every node").
				Value(&result.SSHKeyFile),
		).Title("SSH Access"),
	).RunWithContext(ctx)
}

func driverOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("ssh - pre-provisioned machines", string(config.DriverSSH)),
		huh.NewOption("local - pre-provisioned machines, local run", string(config.DriverLocal)),
		huh.NewOption("hcloud - Hetzner Cloud", string(config.DriverHCloud)),
		huh.NewOption("openstack - OpenStack Compute", string(config.DriverOpenStack)),
	}
}

func roleOptions(selected []string) []huh.Option[string] {
	return lo.Map(config.SingletonRoles(), func(r config.Role, _ int) huh.Option[string] {
		return huh.NewOption(r.String(), r.String()).Selected(lo.Contains(selected, r.String()))
	})
}

// validateID applies the same rule as config validation.
func validateID(id string) error {
	cfg := config.Config{ID: id}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("must be a lowercase DNS label")
	}
	return nil
}

func validateCount(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < 0 || n > maxBuilders {
		return fmt.Errorf("must be between 0 and %d", maxBuilders)
	}
	return nil
}
