package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/cvent/delivery-cluster/internal/config"
	"github.com/cvent/delivery-cluster/internal/config/wizard"
	"github.com/cvent/delivery-cluster/internal/util/naming"
)

// InitOptions are the flags of the init command.
type InitOptions struct {
	ID             string
	Driver         string
	Builders       int
	Output         string
	NonInteractive bool
}

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// generateClusterID picks a random cluster id when none is given.
	generateClusterID = naming.ClusterID

	// interactive reports whether the wizard can prompt.
	interactive = isInteractiveTTY

	// runWizard runs the interactive form.
	runWizard = wizard.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = wizard.WriteConfig
)

// Init writes a configuration skeleton, asking for the details on a terminal.
func Init(ctx context.Context, opts InitOptions) error {
	if fileExists(opts.Output) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", opts.Output)
	}

	id := opts.ID
	if id == "" {
		id = generateClusterID()
	}

	result := wizard.DefaultResult(id)
	if opts.Driver != "" {
		driver, err := config.ParseDriver(opts.Driver)
		if err != nil {
			return err
		}
		result.Driver = string(driver)
	}
	if opts.Builders >= 0 {
		result.BuilderCount = opts.Builders
	}

	if !opts.NonInteractive && interactive() {
		printWelcome()

		var err error
		result, err = runWizard(ctx, result)
		if err != nil {
			return fmt.Errorf("wizard canceled: %w", err)
		}
	}

	cfg := wizard.BuildConfig(result)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("generated configuration is invalid: %w", err)
	}

	if err := writeConfig(cfg, opts.Output); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(opts.Output, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("delivery-cluster - topology for Chef delivery clusters")
	fmt.Println("======================================================")
	fmt.Println()
	fmt.Println("This wizard writes a cluster configuration skeleton.")
	fmt.Println("Addresses can be pinned per role afterwards.")
	fmt.Println()
}

// printInitSuccess prints a summary and the next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Cluster Summary")
	fmt.Println("---------------")
	fmt.Printf("  ID:       %s\n", cfg.ID)
	fmt.Printf("  Driver:   %s\n", cfg.Driver)
	for _, role := range cfg.PresentRoles() {
		if role.Scalable() {
			fmt.Printf("  Builders: %d\n", cfg.BuilderCount())
			continue
		}
		fmt.Printf("  - %s\n", role)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	step := 1
	switch cfg.Driver {
	case config.DriverHCloud:
		fmt.Printf("  %d. Set your Hetzner Cloud API token:\n", step)
		fmt.Printf("     export %s=<your-token>\n", config.HCloudTokenEnv)
		step++
	case config.DriverOpenStack:
		fmt.Printf("  %d. Source your OpenStack credentials (OS_* variables)\n", step)
		step++
	default:
		fmt.Printf("  %d. Add node addresses under ssh.nodes and ssh.builders\n", step)
		step++
	}
	fmt.Println()
	fmt.Printf("  %d. Check the configuration:\n", step)
	fmt.Printf("     delivery-cluster validate -c %s\n", outputPath)
	fmt.Println()
}
