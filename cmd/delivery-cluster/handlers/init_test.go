package handlers

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvent/delivery-cluster/internal/config"
	"github.com/cvent/delivery-cluster/internal/config/wizard"
)

// saveAndRestoreInitFactories saves and restores init factory functions.
func saveAndRestoreInitFactories(t *testing.T) {
	origFileExists := fileExists
	origGenerateClusterID := generateClusterID
	origInteractive := interactive
	origRunWizard := runWizard
	origWriteConfig := writeConfig

	t.Cleanup(func() {
		fileExists = origFileExists
		generateClusterID = origGenerateClusterID
		interactive = origInteractive
		runWizard = origRunWizard
		writeConfig = origWriteConfig
	})
}

func TestInit_NonInteractive(t *testing.T) {
	saveAndRestoreInitFactories(t)
	generateClusterID = func() string { return "brave-otter" }
	interactive = func() bool { return true }
	runWizard = func(context.Context, *wizard.WizardResult) (*wizard.WizardResult, error) {
		t.Fatal("wizard must not run in non-interactive mode")
		return nil, nil
	}

	output := filepath.Join(t.TempDir(), "delivery-cluster.yaml")
	out := captureOutput(func() {
		err := Init(context.Background(), InitOptions{
			Builders:       3,
			Output:         output,
			NonInteractive: true,
		})
		require.NoError(t, err)
	})

	assert.Contains(t, out, "Configuration saved!")
	assert.Contains(t, out, "brave-otter")
	assert.Contains(t, out, "Builders: 3")
	assert.Contains(t, out, "ssh.nodes")

	cfg, err := config.LoadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "brave-otter", cfg.ID)
	assert.Equal(t, config.DriverSSH, cfg.Driver)
	assert.Equal(t, 3, cfg.BuilderCount())
	assert.Equal(t, []config.Role{config.RoleChefServer, config.RoleDelivery, config.RoleBuilders}, cfg.PresentRoles())
}

func TestInit_RunsWizardOnTerminal(t *testing.T) {
	saveAndRestoreInitFactories(t)
	interactive = func() bool { return true }

	var got *wizard.WizardResult
	runWizard = func(_ context.Context, defaults *wizard.WizardResult) (*wizard.WizardResult, error) {
		got = defaults
		result := *defaults
		result.Driver = string(config.DriverOpenStack)
		result.Roles = []string{"chef-server", "delivery", "splunk"}
		return &result, nil
	}

	var written *config.Config
	writeConfig = func(cfg *config.Config, _ string) error {
		written = cfg
		return nil
	}

	out := captureOutput(func() {
		err := Init(context.Background(), InitOptions{ID: "prod", Builders: -1, Output: "out.yaml"})
		require.NoError(t, err)
	})

	require.NotNil(t, got)
	assert.Equal(t, "prod", got.ID)
	assert.Equal(t, 1, got.BuilderCount)

	require.NotNil(t, written)
	assert.Equal(t, config.DriverOpenStack, written.Driver)
	_, ok := written.Section(config.RoleSplunk)
	assert.True(t, ok)

	assert.Contains(t, out, "delivery-cluster - topology for Chef delivery clusters")
	assert.Contains(t, out, "OpenStack credentials")
}

func TestInit_WizardCanceled(t *testing.T) {
	saveAndRestoreInitFactories(t)
	interactive = func() bool { return true }
	runWizard = func(context.Context, *wizard.WizardResult) (*wizard.WizardResult, error) {
		return nil, errors.New("user aborted")
	}

	var err error
	captureOutput(func() {
		err = Init(context.Background(), InitOptions{ID: "prod", Output: "out.yaml"})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard canceled")
}

func TestInit_InvalidDriver(t *testing.T) {
	saveAndRestoreInitFactories(t)
	fileExists = func(string) bool { return false }

	err := Init(context.Background(), InitOptions{ID: "prod", Driver: "vagrant", Output: "out.yaml"})
	assert.ErrorIs(t, err, config.ErrUnknownDriver)
}

func TestInit_InvalidID(t *testing.T) {
	saveAndRestoreInitFactories(t)
	fileExists = func(string) bool { return false }
	interactive = func() bool { return false }

	err := Init(context.Background(), InitOptions{ID: "Not_A_Label", Output: "out.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generated configuration is invalid")
}

func TestInit_WarnsOnExistingFile(t *testing.T) {
	saveAndRestoreInitFactories(t)
	fileExists = func(string) bool { return true }
	interactive = func() bool { return false }
	writeConfig = func(*config.Config, string) error { return nil }

	out := captureOutput(func() {
		require.NoError(t, Init(context.Background(), InitOptions{ID: "prod", Output: "existing.yaml"}))
	})
	assert.Contains(t, out, "Warning: existing.yaml already exists")
}

func TestInit_WriteError(t *testing.T) {
	saveAndRestoreInitFactories(t)
	fileExists = func(string) bool { return false }
	interactive = func() bool { return false }
	writeConfig = func(*config.Config, string) error { return errors.New("disk full") }

	err := Init(context.Background(), InitOptions{ID: "prod", Output: "out.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config")
}

func TestPrintInitSuccess_HCloud(t *testing.T) {
	cfg := &config.Config{ID: "prod", Driver: config.DriverHCloud, ChefServer: &config.RoleConfig{}}

	out := captureOutput(func() {
		printInitSuccess("prod.yaml", cfg)
	})

	assert.Contains(t, out, "export HCLOUD_TOKEN=<your-token>")
	assert.Contains(t, out, "delivery-cluster validate -c prod.yaml")
	assert.Contains(t, out, "- chef-server")
}
