package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Prefix is prepended to every environment variable name.
const Prefix = "OAUTHTOKEN"

type Config interface {
	EnvConfig
	StoreConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() zerolog.Level
}

type mainConfig struct {
	EnvVars
}

// New reads the configuration from OAUTHTOKEN_* environment variables.
func New() (Config, error) {
	var c mainConfig
	if err := envconfig.Process(Prefix, &c.EnvVars); err != nil {
		return nil, err
	}
	return c, nil
}
