package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seabattle/config"
)

func TestGameConfigFromForm(t *testing.T) {
	c := config.DefaultConfig
	c.Player.Name = " Alice "
	setup := NewGameSetup(&c, nil, nil)

	cfg, err := setup.GameConfig()
	require.NoError(t, err)
	assert.Equal(t, "Alice", cfg.Name)
	assert.Equal(t, "localhost:7070", cfg.Address)
	assert.False(t, cfg.Initiator)

	setup.initiator = true
	setup.host = ""
	setup.port = 9000
	setup.random = true
	cfg, err = setup.GameConfig()
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", cfg.Address)
	assert.True(t, cfg.Initiator)
	assert.True(t, cfg.Random)
}

func TestGameConfigRejectsBadInput(t *testing.T) {
	setup := NewGameSetup(&config.DefaultConfig, nil, nil)

	setup.name = "   "
	_, err := setup.GameConfig()
	assert.Error(t, err)

	setup.name = "Bob"
	setup.port = 0
	_, err = setup.GameConfig()
	assert.Error(t, err)
}

func TestGameConfigIPv6Host(t *testing.T) {
	c := config.DefaultConfig
	c.Player.Host = "::1"
	setup := NewGameSetup(&c, nil, nil)
	setup.initiator = true

	cfg, err := setup.GameConfig()
	require.NoError(t, err)
	assert.Equal(t, "[::1]:7070", cfg.Address)
}

func TestStorePlayerUpdatesConfig(t *testing.T) {
	c := config.DefaultConfig
	setup := NewGameSetup(&c, nil, nil)
	setup.name = " Carol "
	setup.host = "10.0.0.5"
	setup.port = 9001

	cfg, err := setup.GameConfig()
	require.NoError(t, err)
	setup.storePlayer(cfg)

	assert.Equal(t, "Carol", c.Player.Name)
	assert.Equal(t, "10.0.0.5", c.Player.Host)
	assert.Equal(t, 9001, c.Player.Port)
	assert.Equal(t, "Player", config.DefaultConfig.Player.Name)
}
