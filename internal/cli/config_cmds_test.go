package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t, nil)

	out, err := execute(t, "", "config", "init")

	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "items_per_page: 10")
	assert.Contains(t, string(data), "default_tab: pending")
}

func TestConfigInit_ExistingRequiresForce(t *testing.T) {
	home := setupCLITest(t, nil)
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dashboard:\n  items_per_page: 20\n"), 0o600))

	_, err := execute(t, "", "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "", "config", "init", "--force")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "items_per_page: 10")
}

func TestConfigInit_CustomPath(t *testing.T) {
	setupCLITest(t, nil)
	path := filepath.Join(t.TempDir(), "custom.yaml")

	out, err := execute(t, "", "--config", path, "config", "init")

	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)
}

func TestConfigShow_AppliesOverrides(t *testing.T) {
	home := setupCLITest(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"),
		[]byte("dashboard:\n  default_tab: approved\n"), 0o600))
	t.Setenv("TRIPDESK_DASHBOARD_ITEMS_PER_PAGE", "15")

	out, err := execute(t, "", "--base-url", "https://travel.example.com", "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "base_url: https://travel.example.com")
	assert.Contains(t, out, "default_tab: approved")
	assert.Contains(t, out, "items_per_page: 15")
}

func TestConfigValidate(t *testing.T) {
	setupCLITest(t, nil)

	out, err := execute(t, "", "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Items per page: 10")

	t.Setenv("TRIPDESK_DASHBOARD_ITEMS_PER_PAGE", "7")
	_, err = execute(t, "", "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ItemsPerPage")
}

func TestInvalidConfigBlocksCommands(t *testing.T) {
	setupCLITest(t, nil)
	t.Setenv("TRIPDESK_DASHBOARD_DEFAULT_TAB", "archived")

	_, err := execute(t, "", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
