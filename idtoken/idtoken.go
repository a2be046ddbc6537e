// Package idtoken reads and verifies the OpenID Connect id_token that some
// providers return alongside a bearer token.
package idtoken

import (
	"context"
	"crypto"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/pkg/errors"
)

// ErrNoIDToken is returned when a token carries no id_token.
var ErrNoIDToken = errors.New("token has no id_token")

// Carrier is anything holding an optional id_token, such as token.Bearer.
type Carrier interface {
	IDToken() (string, bool)
}

// Peek decodes the claims of raw without checking its signature.
// The result is only fit for display.
func Peek(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, errors.Wrap(err, "idtoken.Peek")
	}
	return claims, nil
}

// NewVerifier returns a verifier for ID tokens issued by issuer to clientID
// and signed by one of keys. Keys are supplied up front, so verification
// never fetches a JWKS document.
func NewVerifier(issuer, clientID string, keys ...crypto.PublicKey) *oidc.IDTokenVerifier {
	keySet := &oidc.StaticKeySet{PublicKeys: keys}
	return oidc.NewVerifier(issuer, keySet, &oidc.Config{
		ClientID: clientID,
		Now:      func() time.Time { return token.NowTimeFunc() },
	})
}

// Verify checks the signature and claims of tok's id_token.
func Verify(ctx context.Context, v *oidc.IDTokenVerifier, tok Carrier) (*oidc.IDToken, error) {
	raw, ok := tok.IDToken()
	if !ok {
		return nil, ErrNoIDToken
	}
	idToken, err := v.Verify(ctx, raw)
	if err != nil {
		return nil, errors.Wrap(err, "idtoken.Verify")
	}
	return idToken, nil
}
