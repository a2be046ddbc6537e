package idtoken_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-oauth-tokens/idtoken"
	"github.com/jrsteele09/go-oauth-tokens/internal/utils"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://accounts.google.com"
	testClientID = "1234.apps.googleusercontent.com"
)

func signIDToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return raw
}

func claimsFor(aud string, expiresAt time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"iss":   testIssuer,
		"sub":   "110169484474386276334",
		"aud":   aud,
		"email": "user@example.com",
		"iat":   expiresAt.Add(-time.Hour).Unix(),
		"exp":   expiresAt.Unix(),
		"jti":   uuid.New().String(),
	}
}

func bearerWithIDToken(t *testing.T, raw *string) token.Bearer[token.Static] {
	t.Helper()
	b, err := token.NewBearer("ya29.aaaa", utils.Ptr("openid email"), token.Static{}, raw)
	require.NoError(t, err)
	return b
}

func TestVerify(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	verifier := idtoken.NewVerifier(testIssuer, testClientID, key.Public())
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		raw := signIDToken(t, key, claimsFor(testClientID, time.Now().Add(time.Hour)))
		idToken, err := idtoken.Verify(ctx, verifier, bearerWithIDToken(t, &raw))
		require.NoError(t, err)
		require.Equal(t, "110169484474386276334", idToken.Subject)

		var claims struct {
			Email string `json:"email"`
		}
		require.NoError(t, idToken.Claims(&claims))
		require.Equal(t, "user@example.com", claims.Email)
	})

	t.Run("expired", func(t *testing.T) {
		raw := signIDToken(t, key, claimsFor(testClientID, time.Now().Add(-time.Hour)))
		_, err := idtoken.Verify(ctx, verifier, bearerWithIDToken(t, &raw))
		var expired *oidc.TokenExpiredError
		require.ErrorAs(t, err, &expired)
	})

	t.Run("wrong audience", func(t *testing.T) {
		raw := signIDToken(t, key, claimsFor("someone-else", time.Now().Add(time.Hour)))
		_, err := idtoken.Verify(ctx, verifier, bearerWithIDToken(t, &raw))
		require.Error(t, err)
	})

	t.Run("wrong key", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		raw := signIDToken(t, other, claimsFor(testClientID, time.Now().Add(time.Hour)))
		_, err = idtoken.Verify(ctx, verifier, bearerWithIDToken(t, &raw))
		require.Error(t, err)
	})

	t.Run("no id_token", func(t *testing.T) {
		_, err := idtoken.Verify(ctx, verifier, bearerWithIDToken(t, nil))
		require.ErrorIs(t, err, idtoken.ErrNoIDToken)
	})
}

func TestPeek(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	raw := signIDToken(t, key, claimsFor(testClientID, time.Now().Add(-time.Hour)))
	claims, err := idtoken.Peek(raw)
	require.NoError(t, err, "expired tokens can still be displayed")
	require.Equal(t, testIssuer, claims["iss"])
	require.Equal(t, "user@example.com", claims["email"])

	_, err = idtoken.Peek("not-a-jwt")
	require.Error(t, err)
}
