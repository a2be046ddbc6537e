package token_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	clock := useClock(t, testNow)

	r, err := token.DecodeResponse([]byte(`{}`))
	require.NoError(t, err)

	s, err := token.Static{}.FromResponse(r)
	require.NoError(t, err)
	require.False(t, s.Expired())

	s, err = token.Static{}.FromResponseInherit(r, s)
	require.NoError(t, err)

	*clock = testNow.AddDate(1000, 0, 0)
	require.False(t, s.Expired())
}

func TestExpiring_Expired(t *testing.T) {
	clock := useClock(t, testNow)

	r, err := token.DecodeResponse([]byte(`{"expires_in":60,"refresh_token":"bbbbbbbb"}`))
	require.NoError(t, err)
	e, err := token.Expiring{}.FromResponse(r)
	require.NoError(t, err)
	require.Equal(t, testNow.Add(time.Minute), e.ExpiresAt())

	require.False(t, e.Expired())

	*clock = testNow.Add(59 * time.Second)
	require.False(t, e.Expired())

	*clock = testNow.Add(time.Minute)
	require.True(t, e.Expired(), "expired at exactly expires_at")

	*clock = testNow.Add(time.Hour)
	require.True(t, e.Expired())
}

func TestExpiring_ZeroExpiresIn(t *testing.T) {
	useClock(t, testNow)

	r, err := token.DecodeResponse([]byte(`{"expires_in":0,"refresh_token":"bbbbbbbb"}`))
	require.NoError(t, err)
	e, err := token.Expiring{}.FromResponse(r)
	require.NoError(t, err)
	require.True(t, e.Expired())
}

func TestExpiring_FromResponseInherit(t *testing.T) {
	clock := useClock(t, testNow)
	prev := mustExpiring(t, testNow.Add(-time.Hour), "bbbbbbbb")

	*clock = testNow.Add(time.Minute)
	r, err := token.DecodeResponse([]byte(`{"expires_in":120}`))
	require.NoError(t, err)

	e, err := token.Expiring{}.FromResponseInherit(r, prev)
	require.NoError(t, err)
	require.Equal(t, "bbbbbbbb", e.RefreshToken())
	require.Equal(t, testNow.Add(3*time.Minute), e.ExpiresAt(), "expiry is recomputed, never inherited")

	r, err = token.DecodeResponse([]byte(`{"expires_in":120,"refresh_token":42}`))
	require.NoError(t, err)
	_, err = token.Expiring{}.FromResponseInherit(r, prev)
	require.Equal(t, token.WrongType("refresh_token", "string"), err)
}

func TestNewExpiring(t *testing.T) {
	_, err := token.NewExpiring(testNow, "")
	require.Equal(t, token.ExpectedFieldValue("refresh_token", "non-empty string"), err)

	local := time.Date(2024, time.March, 1, 13, 0, 0, 0, time.FixedZone("CET", 3600))
	e, err := token.NewExpiring(local, "bbbbbbbb")
	require.NoError(t, err)
	require.Equal(t, testNow, e.ExpiresAt())
}
