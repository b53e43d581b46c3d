package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cmd",
		"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
		"-t", "60", "-w", "3", "-o", "http://example.com",
	}

	config := &Config{}
	config.LoadDefaults()
	parseFlags(config)

	assert.Equal(t, "127.0.0.1:9090", config.EndpointAddr)
	assert.Equal(t, "db", config.DatabaseDSN)
	assert.Equal(t, "secret", config.SecretKey)
	assert.Equal(t, 60*time.Minute, config.SessionTokenValidityDuration)
	assert.Equal(t, 3*time.Second, config.DependencyTimeout)
	assert.Equal(t, "http://example.com", config.CORSAllowedOrigins)
}

func TestParseFlags_KeepsDefaultsWithoutArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cmd"}

	config := &Config{}
	config.LoadDefaults()
	parseFlags(config)

	assert.Equal(t, ":8080", config.EndpointAddr)
	assert.Equal(t, 15*24*time.Hour, config.SessionTokenValidityDuration)
}
