// Package provider holds static configuration for OAuth 2.0 authorization
// servers: their endpoints, their quirks, and the token type their
// responses are parsed as.
package provider

import (
	"sort"

	"github.com/jrsteele09/go-oauth-tokens/internal/errors"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"golang.org/x/oauth2"
)

// Provider is an authorization server whose tokens have lifetime L.
// The lifetime is fixed by the type, so the parser for a provider's
// responses is chosen at compile time.
type Provider[L token.LifetimeParser[L]] struct {
	// Name identifies the provider in configuration and storage keys.
	Name string

	// AuthURI is the authorization endpoint, RFC 6749 section 3.1.
	AuthURI string

	// TokenURI is the token endpoint, RFC 6749 section 3.2.
	TokenURI string

	// CredentialsInBody is set for providers that want client_id and
	// client_secret in the request body rather than via HTTP Basic auth,
	// which RFC 6749 section 2.3.1 allows but does not recommend.
	CredentialsInBody bool
}

// Google issues expiring tokens with refresh support.
// See https://developers.google.com/identity/protocols/OAuth2
var Google = Provider[token.Expiring]{
	Name:     "google",
	AuthURI:  "https://accounts.google.com/o/oauth2/v2/auth",
	TokenURI: "https://www.googleapis.com/oauth2/v4/token",
}

// GitHub issues tokens that never expire.
// See https://developer.github.com/v3/oauth/
var GitHub = Provider[token.Static]{
	Name:     "github",
	AuthURI:  "https://github.com/login/oauth/authorize",
	TokenURI: "https://github.com/login/oauth/access_token",
}

// Imgur issues expiring tokens with refresh support.
// See https://api.imgur.com/oauth2
var Imgur = Provider[token.Expiring]{
	Name:     "imgur",
	AuthURI:  "https://api.imgur.com/oauth2/authorize",
	TokenURI: "https://api.imgur.com/oauth2/token",
}

var registry = map[string]Info{
	Google.Name: Google.Info(),
	GitHub.Name: GitHub.Info(),
	Imgur.Name:  Imgur.Info(),
}

// ParseToken parses the token endpoint response to an authorization_code
// grant.
func (p Provider[L]) ParseToken(body []byte) (token.Bearer[L], error) {
	return token.Parse[token.Bearer[L]](body)
}

// ParseRefresh parses the response to a refresh_token grant, inheriting
// fields the server omitted from prev.
func (p Provider[L]) ParseRefresh(body []byte, prev token.Bearer[L]) (token.Bearer[L], error) {
	return token.ParseInherit(body, prev)
}

// Endpoint returns the provider's endpoints for golang.org/x/oauth2.
func (p Provider[L]) Endpoint() oauth2.Endpoint {
	style := oauth2.AuthStyleInHeader
	if p.CredentialsInBody {
		style = oauth2.AuthStyleInParams
	}
	return oauth2.Endpoint{
		AuthURL:   p.AuthURI,
		TokenURL:  p.TokenURI,
		AuthStyle: style,
	}
}

// Config returns an oauth2.Config for a client registered with the provider.
func (p Provider[L]) Config(clientID, clientSecret, redirectURL string, scopes ...string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     p.Endpoint(),
		RedirectURL:  redirectURL,
		Scopes:       scopes,
	}
}

// Info describes the provider without its type parameter.
func (p Provider[L]) Info() Info {
	return Info{
		Name:              p.Name,
		AuthURI:           p.AuthURI,
		TokenURI:          p.TokenURI,
		CredentialsInBody: p.CredentialsInBody,
		Lifetime:          lifetimeKindOf[L](),
	}
}

// LifetimeKind names a token lifetime for display and configuration.
type LifetimeKind string

const (
	LifetimeStatic   LifetimeKind = "static"
	LifetimeExpiring LifetimeKind = "expiring"
)

func lifetimeKindOf[L token.LifetimeParser[L]]() LifetimeKind {
	var zero L
	if _, ok := any(zero).(token.Expiring); ok {
		return LifetimeExpiring
	}
	return LifetimeStatic
}

// Info is the untyped view of a Provider, used where the provider is only
// known by name at runtime.
type Info struct {
	Name              string       `json:"name"`
	AuthURI           string       `json:"auth_uri"`
	TokenURI          string       `json:"token_uri"`
	CredentialsInBody bool         `json:"credentials_in_body"`
	Lifetime          LifetimeKind `json:"lifetime"`
}

// Lookup finds a registered provider by name.
func Lookup(name string) (Info, error) {
	info, ok := registry[name]
	if !ok {
		return Info{}, errors.Wrapf(errors.ErrUnknownProvider, "provider.Lookup %q", name)
	}
	return info, nil
}

// All returns every registered provider sorted by name.
func All() []Info {
	infos := make([]Info, 0, len(registry))
	for _, info := range registry {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Bind restores the typed Provider from info. It fails when L does not
// match the provider's lifetime.
func Bind[L token.LifetimeParser[L]](info Info) (Provider[L], error) {
	if want := lifetimeKindOf[L](); info.Lifetime != want {
		return Provider[L]{}, errors.Wrapf(errors.ErrLifetimeMismatch, "provider.Bind %q is %s, not %s", info.Name, info.Lifetime, want)
	}
	return Provider[L]{
		Name:              info.Name,
		AuthURI:           info.AuthURI,
		TokenURI:          info.TokenURI,
		CredentialsInBody: info.CredentialsInBody,
	}, nil
}
