package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/avetrovs/userhub/internal/flagx"
	"github.com/avetrovs/userhub/internal/timex"
)

// JsonConfig is the DTO used only for reading JSON configuration files.
// Interval fields use timex.Duration so both "360h" strings and integer
// nanoseconds parse. After unmarshalling, values are copied into the
// runtime Config.
type JsonConfig struct {
	EndpointAddr                 string         `json:"endpoint_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	SessionTokenValidityDuration timex.Duration `json:"session_token_validity_duration"`
	DependencyTimeout            timex.Duration `json:"dependency_timeout"`
	DevMode                      *bool          `json:"dev_mode"`
	CORSAllowedOrigins           string         `json:"cors_allowed_origins"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config flags, when given. Zero-valued fields in the file leave the
// existing Config values untouched. Unreadable or invalid files panic:
// a half-applied config is worse than a crash at startup.
func parseJson(config *Config) {

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

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionTokenValidityDuration.Duration != 0 {
		config.SessionTokenValidityDuration = time.Duration(c.SessionTokenValidityDuration.Duration)
	}
	if c.DependencyTimeout.Duration != 0 {
		config.DependencyTimeout = time.Duration(c.DependencyTimeout.Duration)
	}
	if c.DevMode != nil {
		config.DevMode = *c.DevMode
	}
	if c.CORSAllowedOrigins != "" {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
}
