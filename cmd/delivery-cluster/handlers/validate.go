package handlers

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/cvent/delivery-cluster/internal/config"
	"github.com/cvent/delivery-cluster/internal/topology"
)

// Validate loads the configuration and asserts that every configured role,
// plus any role named in require, has a section.
func Validate(g Globals, require []string) error {
	cfg, err := loadConfig(g.ConfigPath)
	if err != nil {
		return err
	}

	roles := cfg.PresentRoles()
	for _, name := range require {
		role, err := config.ParseRole(name)
		if err != nil {
			return err
		}
		roles = append(roles, role)
	}
	roles = lo.Uniq(roles)

	if err := topology.RequireRoles(cfg, roles...); err != nil {
		return err
	}

	printValidateSuccess(g.ConfigPath, cfg)
	return nil
}

func printValidateSuccess(path string, cfg *config.Config) {
	names := lo.Map(cfg.PresentRoles(), func(r config.Role, _ int) string {
		return r.String()
	})

	fmt.Printf("%s is valid\n", path)
	fmt.Printf("  ID:       %s\n", cfg.ID)
	fmt.Printf("  Driver:   %s\n", cfg.Driver)
	fmt.Printf("  Roles:    %v\n", names)
	fmt.Printf("  Builders: %d\n", cfg.BuilderCount())
}
