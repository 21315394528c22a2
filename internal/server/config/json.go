package config

import (
	"encoding/json"
	"os"

	"github.com/mbenali/campushub/internal/flagx"
	"github.com/mbenali/campushub/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for token lifetimes, which allows
// parsing both string values such as "10h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	AppEnv                       string         `json:"app_env"`
	BcryptCost                   int            `json:"bcrypt_cost"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path is taken from the -c or -config command-line flags.
// When neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics: a broken config file should
// stop startup, not be silently skipped.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Std()
	config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Std()
	config.AppEnv = c.AppEnv
	config.BcryptCost = c.BcryptCost
}
