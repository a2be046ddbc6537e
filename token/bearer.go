package token

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-oauth-tokens/internal/utils"
	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	xoauth2 "golang.org/x/oauth2"
)

// Bearer is an RFC 6750 bearer token with lifetime L.
// A Bearer is immutable; refreshing produces a new value.
type Bearer[L LifetimeParser[L]] struct {
	accessToken string
	scope       *string
	lifetime    L
	idToken     *string
}

var (
	_ Token[Static]                  = Bearer[Static]{}
	_ Token[Expiring]                = Bearer[Expiring]{}
	_ FromResponse[Bearer[Static]]   = Bearer[Static]{}
	_ FromResponse[Bearer[Expiring]] = Bearer[Expiring]{}
)

// NewBearer builds a Bearer directly. The access token must not be empty;
// nil scope or idToken means absent.
func NewBearer[L LifetimeParser[L]](accessToken string, scope *string, lifetime L, idToken *string) (Bearer[L], error) {
	if accessToken == "" {
		return Bearer[L]{}, ExpectedFieldValue(oauth2.FieldAccessToken, "non-empty string")
	}
	return Bearer[L]{
		accessToken: accessToken,
		scope:       utils.Clone(scope),
		lifetime:    lifetime,
		idToken:     utils.Clone(idToken),
	}, nil
}

func (b Bearer[L]) AccessToken() string {
	return b.accessToken
}

func (b Bearer[L]) Scope() (string, bool) {
	return utils.ValueOK(b.scope)
}

func (b Bearer[L]) Lifetime() L {
	return b.lifetime
}

func (b Bearer[L]) IDToken() (string, bool) {
	return utils.ValueOK(b.idToken)
}

// Expired reports whether the lifetime has run out.
func (b Bearer[L]) Expired() bool {
	return b.lifetime.Expired()
}

// FromResponse parses a response from the initial token request.
func (Bearer[L]) FromResponse(r Response) (Bearer[L], error) {
	return parseBearer(r, func() (L, error) {
		var factory L
		return factory.FromResponse(r)
	})
}

// FromResponseInherit parses a refresh response, delegating to the
// lifetime's inherited parse so an omitted refresh_token carries over
// from prev.
func (Bearer[L]) FromResponseInherit(r Response, prev Bearer[L]) (Bearer[L], error) {
	return parseBearer(r, func() (L, error) {
		return prev.lifetime.FromResponseInherit(r, prev.lifetime)
	})
}

// parseBearer validates the token fields before parsing the lifetime, which
// lives in the same response object.
func parseBearer[L LifetimeParser[L]](r Response, parseLifetime func() (L, error)) (Bearer[L], error) {
	tokenType, err := r.String(oauth2.FieldTokenType)
	if err != nil {
		return Bearer[L]{}, err
	}
	if !strings.EqualFold(tokenType, oauth2.TokenTypeBearer.String()) {
		return Bearer[L]{}, ExpectedFieldValue(oauth2.FieldTokenType, oauth2.TokenTypeBearer.String())
	}

	accessToken, err := r.String(oauth2.FieldAccessToken)
	if err != nil {
		return Bearer[L]{}, err
	}
	if accessToken == "" {
		return Bearer[L]{}, ExpectedFieldValue(oauth2.FieldAccessToken, "non-empty string")
	}

	scope, err := r.OptionalString(oauth2.FieldScope)
	if err != nil {
		return Bearer[L]{}, err
	}
	idToken, err := r.OptionalString(oauth2.FieldIDToken)
	if err != nil {
		return Bearer[L]{}, err
	}

	lifetime, err := parseLifetime()
	if err != nil {
		return Bearer[L]{}, err
	}

	return Bearer[L]{
		accessToken: accessToken,
		scope:       scope,
		lifetime:    lifetime,
		idToken:     idToken,
	}, nil
}

// AuthorizationHeader returns the RFC 6750 section 2.1 header value.
func (b Bearer[L]) AuthorizationHeader() string {
	return oauth2.TokenTypeBearer.String() + " " + b.accessToken
}

// SetAuthHeader sets the Authorization header on req.
func (b Bearer[L]) SetAuthHeader(req *http.Request) {
	req.Header.Set("Authorization", b.AuthorizationHeader())
}

// OAuth2Token converts b for use with golang.org/x/oauth2, e.g. as the seed
// of an oauth2.TokenSource. Scope and id_token travel as extras.
func (b Bearer[L]) OAuth2Token() *xoauth2.Token {
	t := &xoauth2.Token{
		AccessToken: b.accessToken,
		TokenType:   oauth2.TokenTypeBearer.String(),
	}
	if e, ok := any(b.lifetime).(Expiring); ok {
		t.RefreshToken = e.refreshToken
		t.Expiry = e.expiresAt
	}

	extra := map[string]any{}
	if b.scope != nil {
		extra[oauth2.FieldScope] = *b.scope
	}
	if b.idToken != nil {
		extra[oauth2.FieldIDToken] = *b.idToken
	}
	if len(extra) == 0 {
		return t
	}
	return t.WithExtra(extra)
}

type bearerJSON[L any] struct {
	AccessToken *string `json:"access_token"`
	Scope       *string `json:"scope"`
	Lifetime    *L      `json:"lifetime"`
	IDToken     *string `json:"id_token"`
}

// MarshalJSON writes the persisted form
// {"access_token", "scope", "lifetime", "id_token"}.
func (b Bearer[L]) MarshalJSON() ([]byte, error) {
	return json.Marshal(bearerJSON[L]{
		AccessToken: &b.accessToken,
		Scope:       b.scope,
		Lifetime:    &b.lifetime,
		IDToken:     b.idToken,
	})
}

// UnmarshalJSON reads the persisted form written by MarshalJSON.
// access_token and lifetime are required; unknown fields are rejected.
func (b *Bearer[L]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var v bearerJSON[L]
	if err := dec.Decode(&v); err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return pe
		}
		return MalformedResponse(err)
	}
	if v.AccessToken == nil {
		return MissingField(oauth2.FieldAccessToken)
	}
	if v.Lifetime == nil {
		return MissingField("lifetime")
	}

	parsed, err := NewBearer(*v.AccessToken, v.Scope, *v.Lifetime, v.IDToken)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
