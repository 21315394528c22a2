package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestParseJson_LoadsFileFromFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_http":              ":9000",
		"database_dsn":                    "postgres://json/campushub",
		"secret_key":                      "json-secret",
		"access_token_validity_duration":  "10h",
		"refresh_token_validity_duration": "72h",
		"app_env":                         "staging",
		"bcrypt_cost":                     11,
	})
	os.Args = []string{"server", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ":9000", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://json/campushub", c.DatabaseDSN)
	assert.Equal(t, "json-secret", c.SecretKey)
	assert.Equal(t, 10*time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, 72*time.Hour, c.RefreshTokenValidityDuration)
	assert.Equal(t, "staging", c.AppEnv)
	assert.Equal(t, 11, c.BcryptCost)
}

func TestParseJson_NoFlagKeepsDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"server"}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "dev-secret-key", c.SecretKey)
}

func TestParseJson_InvalidFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	os.Args = []string{"server", "-c", path}

	var c Config
	c.LoadDefaults()
	assert.Panics(t, func() { parseJson(&c) })
}
