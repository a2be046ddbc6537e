// Package token models OAuth 2.0 access tokens as returned by an
// authorization server's token endpoint (RFC 6749 section 5) and validates
// bearer token responses (RFC 6750).
//
// Token values are built in one of two ways. FromResponse parses a response
// from scratch, after the initial authorization. FromResponseInherit parses
// a refresh response and takes any field it omits, notably refresh_token,
// from the token being refreshed. Both return new values; nothing is mutated.
package token

import (
	"time"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// FromResponse is implemented by every type that can be parsed from a token
// endpoint response. Implementations use value receivers so the zero value
// can act as the factory.
type FromResponse[T any] interface {
	// FromResponse builds a value purely from r.
	FromResponse(r Response) (T, error)
	// FromResponseInherit builds a value from a response that may be a
	// partial update, carrying omitted fields over from prev.
	FromResponseInherit(r Response, prev T) (T, error)
}

// Lifetime is the expiry model of a token.
type Lifetime interface {
	// Expired reports whether the access token is no longer valid.
	Expired() bool
}

// LifetimeParser is a Lifetime that can be parsed from a response.
// Static and Expiring satisfy it.
type LifetimeParser[L any] interface {
	Lifetime
	FromResponse[L]
}

// Token is an OAuth 2.0 access token with lifetime L.
type Token[L Lifetime] interface {
	// AccessToken returns the credential itself.
	AccessToken() string
	// Scope returns the granted scope, if the server sent one.
	Scope() (string, bool)
	// Lifetime returns the expiry model of the token.
	Lifetime() L
	// IDToken returns the OpenID Connect ID token, if any.
	IDToken() (string, bool)
}

// Parse decodes body and builds a T from it.
func Parse[T FromResponse[T]](body []byte) (T, error) {
	var factory T
	r, err := DecodeResponse(body)
	if err != nil {
		return factory, err
	}
	return factory.FromResponse(r)
}

// ParseInherit decodes body and builds a T from it, inheriting omitted
// fields from prev.
func ParseInherit[T FromResponse[T]](body []byte, prev T) (T, error) {
	var factory T
	r, err := DecodeResponse(body)
	if err != nil {
		return factory, err
	}
	return factory.FromResponseInherit(r, prev)
}
