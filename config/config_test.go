package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_TOKEN", "token")
	t.Setenv("CLIST_API_KEY", "key")
	t.Setenv("DEFAULT_HANDLE", "")
	t.Setenv("PORT", "")
	t.Setenv("KEEPALIVE_URL", "")
	t.Setenv("OWNER_ID", "")
}

func TestLoad(t *testing.T) {
	setRequired(t)
	t.Setenv("DEFAULT_HANDLE", "tourist")
	t.Setenv("PORT", "9000")
	t.Setenv("OWNER_ID", "owner-1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "token", cfg.AuthToken)
	assert.Equal(t, "key", cfg.ClistAPIKey)
	assert.Equal(t, "tourist", cfg.DefaultHandle)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "owner-1", cfg.OwnerID)
}

func TestLoad_PortDefault(t *testing.T) {
	setRequired(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8086", cfg.Port)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("AUTH_TOKEN", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_TOKEN")

	setRequired(t)
	t.Setenv("CLIST_API_KEY", "")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLIST_API_KEY")
}
