package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config interface {
	EnvConfig
	APIConfig
	MockConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

// APIConfig describes the remote barbershop API the client talks to.
type APIConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
}

// MockConfig configures the local fake of the remote API.
type MockConfig interface {
	GetMockPort() string
	GetMockJWTSecret() string
	GetMockTokenTTL() time.Duration
}

type mainConfig struct {
	EnvVars
	API
	Mock
}

// New loads the configuration from the environment, falling back to defaults.
func New() (Config, error) {
	c := mainConfig{}
	if err := envconfig.Process("", &c.EnvVars); err != nil {
		return nil, fmt.Errorf("[config New] env: %w", err)
	}
	if err := envconfig.Process("", &c.API); err != nil {
		return nil, fmt.Errorf("[config New] api: %w", err)
	}
	if err := envconfig.Process("", &c.Mock); err != nil {
		return nil, fmt.Errorf("[config New] mock: %w", err)
	}
	return c, nil
}
