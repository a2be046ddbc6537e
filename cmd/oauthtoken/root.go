package main

import (
	"fmt"
	"io"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-oauth-tokens/internal/config"
	"github.com/jrsteele09/go-oauth-tokens/provider"
	"github.com/jrsteele09/go-oauth-tokens/tokenstore"
	"github.com/spf13/cobra"
)

type app struct {
	config  config.Config
	repo    tokenstore.Repo
	version string
}

// target is the provider and store key a command operates on.
type target struct {
	provider string
	account  string
}

func (t *target) register(cmd *cobra.Command, defaultAccount string) {
	f := cmd.Flags()
	f.StringVarP(&t.provider, "provider", "p", "", "provider name (see 'providers')")
	f.StringVarP(&t.account, "account", "a", defaultAccount, "account the token belongs to")
	_ = cmd.MarkFlagRequired("provider")
}

func (t *target) resolve() (provider.Info, string, error) {
	info, err := provider.Lookup(t.provider)
	if err != nil {
		return provider.Info{}, "", err
	}
	key := tokenstore.Key(info.Name, t.account)
	if err := tokenstore.ValidateKey(key); err != nil {
		return provider.Info{}, "", err
	}
	return info, key, nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "oauthtoken",
		Short:         "Parse, store and inspect OAuth 2.0 bearer tokens",
		Long:          "oauthtoken validates token endpoint responses from known OAuth 2.0 providers and keeps the resulting tokens between runs.",
		Version:       a.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("oauthtoken v%s\n", a.version))

	root.AddCommand(
		newProvidersCmd(),
		newParseCmd(a, false),
		newParseCmd(a, true),
		newShowCmd(a),
		newHeaderCmd(a),
		newListCmd(a),
		newVersionCmd(a),
	)
	return root
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			banner := figure.NewFigure(a.config.GetAppName(), "cybermedium", true)
			fmt.Fprintln(cmd.OutOrStdout(), banner.String())
			fmt.Fprintf(cmd.OutOrStdout(), "version %s\n", a.version)
			return nil
		},
	}
}

// readInput reads the named file, or the command's stdin for "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}
