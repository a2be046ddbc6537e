package config

import (
	"github.com/rs/zerolog"
)

type EnvVars struct {
	AppName  string `envconfig:"APP_NAME" default:"OAuth Tokens"`
	Env      string `envconfig:"ENV" default:"DEV"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	TokenDir string `envconfig:"TOKEN_DIR"`
	RedisURL string `envconfig:"REDIS_URL"`
	Account  string `envconfig:"ACCOUNT" default:"default"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	return e.Env
}

// GetLogLevel falls back to info for unrecognised level names.
func (e EnvVars) GetLogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(e.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
