package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig
	require.NoError(t, c.Validate())
	assert.Equal(t, "localhost:7070", c.Address())
}

func TestLoadWithoutFile(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig, *c)
}

func TestLoadFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `{"player": {"name": "Alice", "host": "10.0.0.2", "port": 9000}}`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Alice", c.Player.Name)
	assert.Equal(t, "10.0.0.2:9000", c.Address())
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, DefaultTheme, c.Theme)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"player": {"name": "Alice", "port": 9000}}`)
	t.Setenv("SEABATTLE_NAME", "Bob")
	t.Setenv("SEABATTLE_PORT", "9100")
	t.Setenv("SEABATTLE_LOG_LEVEL", "debug")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Bob", c.Player.Name)
	assert.Equal(t, 9100, c.Player.Port)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty name", `{"player": {"name": "  "}}`},
		{"port zero", `{"player": {"port": 0}}`},
		{"port too large", `{"player": {"port": 70000}}`},
		{"log level", `{"log_level": "loud"}`},
		{"control symbol", `{"theme": {"symbols": {"ship": 7}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			var invalid *InvalidConfig
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, `{"player": `))
	assert.Error(t, err)
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Captain Nemo"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("two\nlines"))
	assert.Error(t, ValidateName("cr\r"))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	c := DefaultConfig
	c.Player.Name = "Saved"
	require.NoError(t, saveCfgFile(path, &c, 0600))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Saved", loaded.Player.Name)
	assert.Equal(t, c.Theme, loaded.Theme)
}

func TestAddressIPv6(t *testing.T) {
	c := DefaultConfig
	c.Player.Host = "::1"
	assert.Equal(t, "[::1]:7070", c.Address())
}
