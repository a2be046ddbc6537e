package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/idtoken"
	"github.com/jrsteele09/go-oauth-tokens/internal/errors"
	"github.com/jrsteele09/go-oauth-tokens/provider"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/jrsteele09/go-oauth-tokens/tokenstore"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List known providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLIFETIME\tAUTH URI\tTOKEN URI")
			for _, info := range provider.All() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Name, info.Lifetime, info.AuthURI, info.TokenURI)
			}
			return w.Flush()
		},
	}
}

func newParseCmd(a *app, refresh bool) *cobra.Command {
	var t target
	var input string

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a token endpoint response and store the token",
		Args:  cobra.NoArgs,
	}
	if refresh {
		cmd.Use = "refresh"
		cmd.Short = "Parse a refresh response and replace the stored token"
	}
	t.register(cmd, a.config.GetAccount())
	cmd.Flags().StringVarP(&input, "input", "i", "-", "file holding the JSON response, or - for stdin")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		info, key, err := t.resolve()
		if err != nil {
			return err
		}
		body, err := readInput(cmd, input)
		if err != nil {
			return errors.Wrapf(err, "reading %s", input)
		}

		ctx := cmd.Context()
		switch info.Lifetime {
		case provider.LifetimeExpiring:
			err = parseAndStore[token.Expiring](ctx, a.repo, info, key, body, refresh)
		default:
			if refresh {
				return errors.Wrapf(errors.ErrNotRefreshable, "%s tokens do not expire", info.Name)
			}
			err = parseAndStore[token.Static](ctx, a.repo, info, key, body, false)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "stored %s\n", key)
		return nil
	}
	return cmd
}

func parseAndStore[L token.LifetimeParser[L]](ctx context.Context, repo tokenstore.Repo, info provider.Info, key string, body []byte, refresh bool) error {
	p, err := provider.Bind[L](info)
	if err != nil {
		return err
	}

	var b token.Bearer[L]
	if refresh {
		prev, err := tokenstore.Get[L](ctx, repo, key)
		if err != nil {
			return err
		}
		b, err = p.ParseRefresh(body, prev)
		if err != nil {
			return err
		}
	} else {
		b, err = p.ParseToken(body)
		if err != nil {
			return err
		}
	}

	log.Info().Str("provider", info.Name).Str("key", key).Bool("refresh", refresh).Msg("token parsed")
	return tokenstore.Put(ctx, repo, key, b)
}

func newShowCmd(a *app) *cobra.Command {
	var t target
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Describe a stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, key, err := t.resolve()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if info.Lifetime == provider.LifetimeExpiring {
				return show[token.Expiring](ctx, cmd.OutOrStdout(), a.repo, key)
			}
			return show[token.Static](ctx, cmd.OutOrStdout(), a.repo, key)
		},
	}
	t.register(cmd, a.config.GetAccount())
	return cmd
}

func show[L token.LifetimeParser[L]](ctx context.Context, out io.Writer, repo tokenstore.Repo, key string) error {
	b, err := tokenstore.Get[L](ctx, repo, key)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "key:\t%s\n", key)
	fmt.Fprintf(w, "access token:\t%s\n", redact(b.AccessToken()))
	if scope, ok := b.Scope(); ok {
		fmt.Fprintf(w, "scope:\t%s\n", scope)
	}

	switch lifetime := any(b.Lifetime()).(type) {
	case token.Expiring:
		status := "valid"
		if lifetime.Expired() {
			status = "expired"
		}
		fmt.Fprintf(w, "expires:\t%s (%s)\n", lifetime.ExpiresAt().Format(time.RFC3339), status)
		fmt.Fprintf(w, "refresh token:\t%s\n", redact(lifetime.RefreshToken()))
	default:
		fmt.Fprintln(w, "expires:\tnever")
	}

	if raw, ok := b.IDToken(); ok {
		claims, err := idtoken.Peek(raw)
		if err != nil {
			fmt.Fprintf(w, "id token:\tunreadable (%s)\n", err)
		} else {
			fmt.Fprintf(w, "id token:\tiss=%v sub=%v aud=%v (unverified)\n", claims["iss"], claims["sub"], claims["aud"])
		}
	}
	return w.Flush()
}

// redact keeps enough of a secret to tell tokens apart.
func redact(secret string) string {
	const keep = 6
	if len(secret) <= keep {
		return strings.Repeat("*", len(secret))
	}
	return secret[:keep] + "..."
}

func newHeaderCmd(a *app) *cobra.Command {
	var t target
	cmd := &cobra.Command{
		Use:   "header",
		Short: "Print the Authorization header value for a stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, key, err := t.resolve()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var value string
			if info.Lifetime == provider.LifetimeExpiring {
				value, err = header[token.Expiring](ctx, a.repo, key)
			} else {
				value, err = header[token.Static](ctx, a.repo, key)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	t.register(cmd, a.config.GetAccount())
	return cmd
}

func header[L token.LifetimeParser[L]](ctx context.Context, repo tokenstore.Repo, key string) (string, error) {
	b, err := tokenstore.Get[L](ctx, repo, key)
	if err != nil {
		return "", err
	}
	if b.Expired() {
		return "", errors.Wrapf(errors.ErrTokenExpired, "%s, run refresh", key)
	}
	return b.AuthorizationHeader(), nil
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := a.repo.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}
}
