package main

import (
	"fmt"
	"os"

	"github.com/jrsteele09/go-oauth-tokens/internal/config"
	"github.com/jrsteele09/go-oauth-tokens/tokenstore"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	c, err := config.New()
	if err != nil {
		return fmt.Errorf("config.New: %w", err)
	}
	setupLogging(c)

	repo, err := openRepo(c)
	if err != nil {
		return err
	}
	return newRootCmd(&app{config: c, repo: repo, version: version}).Execute()
}

func setupLogging(c config.Config) {
	zerolog.SetGlobalLevel(c.GetLogLevel())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Str("env", c.GetEnv()).Logger()
}

// openRepo uses Redis when a URL is configured and the token directory
// otherwise.
func openRepo(c config.StoreConfig) (tokenstore.Repo, error) {
	if url := c.GetRedisURL(); url != "" {
		log.Debug().Msg("using redis token store")
		return tokenstore.NewRedisRepoFromURL(url)
	}
	log.Debug().Str("dir", c.GetTokenDir()).Msg("using file token store")
	return tokenstore.NewFileRepo(c.GetTokenDir()), nil
}
