package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"server": {"host": "0.0.0.0", "port": 8080},
		"database": {"host": "db", "port": 5432, "user": "u", "password": "p", "dbname": "store", "sslmode": "disable"},
		"redis": {"host": "cache", "port": 6379},
		"commerce": {"endpoint": "https://shop.example.com/graphql", "timeout_seconds": 5},
		"campaign": {"cutoff_at": "2026-12-19T08:00:00Z"},
		"cart": {"ttl_hours": 24}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=store sslmode=disable", cfg.Database.GetDSN())
	assert.Equal(t, 5*time.Second, cfg.Commerce.Timeout())
	assert.Equal(t, 24*time.Hour, cfg.Cart.TTL())

	cutoff, err := cfg.Campaign.CutoffTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.December, 19, 8, 0, 0, 0, time.UTC), cutoff.UTC())
}

func TestLoadConfigDefaultsCartTTL(t *testing.T) {
	path := writeConfig(t, `{"server": {"port": 8080}}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 168, cfg.Cart.TTLHours)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("COMMERCE_ACCESS_TOKEN", "tok-from-env")
	t.Setenv("DATABASE_PASSWORD", "pw-from-env")

	path := writeConfig(t, `{
		"database": {"password": "pw-from-file"},
		"commerce": {"access_token": ""}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-from-env", cfg.Commerce.AccessToken)
	assert.Equal(t, "pw-from-env", cfg.Database.Password)
}

func TestCutoffTimeUnset(t *testing.T) {
	var c CampaignConfig
	_, err := c.CutoffTime()
	assert.Error(t, err)
}

func TestZeroTimeoutMeansNoDeadline(t *testing.T) {
	var c CommerceConfig
	assert.Equal(t, time.Duration(0), c.Timeout())
}
