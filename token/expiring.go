package token

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
)

// maxExpiresIn keeps expires_in within what time.Duration can hold.
const maxExpiresIn = math.MaxInt64 / int64(time.Second)

// Expiring is the lifetime of a token that expires at an absolute instant
// and can be renewed with a refresh token.
type Expiring struct {
	expiresAt    time.Time
	refreshToken string
}

var _ LifetimeParser[Expiring] = Expiring{}

// NewExpiring builds an Expiring lifetime directly, e.g. when migrating
// tokens from another store. The refresh token must not be empty.
func NewExpiring(expiresAt time.Time, refreshToken string) (Expiring, error) {
	if refreshToken == "" {
		return Expiring{}, ExpectedFieldValue(oauth2.FieldRefreshToken, "non-empty string")
	}
	return Expiring{expiresAt: expiresAt.UTC(), refreshToken: refreshToken}, nil
}

// ExpiresAt returns the instant the access token stops being valid.
func (e Expiring) ExpiresAt() time.Time {
	return e.expiresAt
}

// RefreshToken returns the token used to renew the access token.
func (e Expiring) RefreshToken() string {
	return e.refreshToken
}

// Expired reports whether the current time has reached ExpiresAt.
// The clock is read on every call.
func (e Expiring) Expired() bool {
	return !NowTimeFunc().Before(e.expiresAt)
}

// FromResponse requires both expires_in and refresh_token.
func (Expiring) FromResponse(r Response) (Expiring, error) {
	expiresAt, err := expiresAtFrom(r)
	if err != nil {
		return Expiring{}, err
	}

	refreshToken, err := r.String(oauth2.FieldRefreshToken)
	if err != nil {
		return Expiring{}, err
	}
	if refreshToken == "" {
		return Expiring{}, ExpectedFieldValue(oauth2.FieldRefreshToken, "non-empty string")
	}

	return Expiring{expiresAt: expiresAt, refreshToken: refreshToken}, nil
}

// FromResponseInherit requires expires_in. A missing refresh_token means the
// server kept the previous one. The expiry is always recomputed.
func (Expiring) FromResponseInherit(r Response, prev Expiring) (Expiring, error) {
	expiresAt, err := expiresAtFrom(r)
	if err != nil {
		return Expiring{}, err
	}

	refreshToken, err := r.OptionalString(oauth2.FieldRefreshToken)
	if err != nil {
		return Expiring{}, err
	}
	if refreshToken == nil {
		return Expiring{expiresAt: expiresAt, refreshToken: prev.refreshToken}, nil
	}
	if *refreshToken == "" {
		return Expiring{}, ExpectedFieldValue(oauth2.FieldRefreshToken, "non-empty string")
	}

	return Expiring{expiresAt: expiresAt, refreshToken: *refreshToken}, nil
}

// expiresAtFrom turns the relative expires_in offset into an absolute UTC
// instant, measured from the time of parsing.
func expiresAtFrom(r Response) (time.Time, error) {
	expiresIn, err := r.Int(oauth2.FieldExpiresIn)
	if err != nil {
		return time.Time{}, err
	}
	if expiresIn < 0 {
		return time.Time{}, ExpectedFieldValue(oauth2.FieldExpiresIn, "non-negative integer")
	}
	if expiresIn > maxExpiresIn {
		return time.Time{}, ExpectedFieldValue(oauth2.FieldExpiresIn, "at most 292 years")
	}
	return NowTimeFunc().Add(time.Duration(expiresIn) * time.Second).UTC(), nil
}

type expiringJSON struct {
	Expires      *time.Time `json:"expires"`
	RefreshToken *string    `json:"refresh_token"`
}

// MarshalJSON writes the persisted form {"expires": RFC 3339, "refresh_token": ...}.
func (e Expiring) MarshalJSON() ([]byte, error) {
	return json.Marshal(expiringJSON{Expires: &e.expiresAt, RefreshToken: &e.refreshToken})
}

// UnmarshalJSON reads the persisted form written by MarshalJSON.
func (e *Expiring) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var v expiringJSON
	if err := dec.Decode(&v); err != nil {
		return MalformedResponse(err)
	}
	if v.Expires == nil {
		return MissingField("expires")
	}
	if v.RefreshToken == nil {
		return MissingField(oauth2.FieldRefreshToken)
	}

	parsed, err := NewExpiring(*v.Expires, *v.RefreshToken)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
