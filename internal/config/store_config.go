package config

import (
	"os"
	"path/filepath"
)

type StoreConfig interface {
	GetTokenDir() string
	GetRedisURL() string
	GetAccount() string
}

var _ StoreConfig = EnvVars{}

// GetTokenDir defaults to an "oauthtoken" directory under the user's
// config directory.
func (e EnvVars) GetTokenDir() string {
	if e.TokenDir != "" {
		return e.TokenDir
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".oauthtoken"
	}
	return filepath.Join(dir, "oauthtoken")
}

// GetRedisURL is empty when tokens are kept on disk.
func (e EnvVars) GetRedisURL() string {
	return e.RedisURL
}

func (e EnvVars) GetAccount() string {
	return e.Account
}
