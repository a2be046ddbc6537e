package oauth2

// Field names of a successful token endpoint response, RFC 6749 section 5.1.
const (
	FieldTokenType    = "token_type"
	FieldAccessToken  = "access_token"
	FieldExpiresIn    = "expires_in"
	FieldRefreshToken = "refresh_token"
	FieldScope        = "scope"

	// FieldIDToken is the OpenID Connect Core 1.0 section 3.1.3.3 extension.
	FieldIDToken = "id_token"
)

// TokenResponse is the JSON body returned from the token endpoint for the
// authorization_code and refresh_token grants.
// It only describes the wire shape; validation lives in the token package,
// which reads responses field by field so it can tell a missing field from a
// zero value.
type TokenResponse struct {
	// TokenType tells the client how to present the access token.
	// Example: "Bearer"
	// Only "Bearer" (any case) is accepted by token.Bearer.
	TokenType string `json:"token_type"`

	// AccessToken is the opaque credential presented to resource servers.
	// Example: "ya29.a0AfH6SMB..."
	AccessToken string `json:"access_token"`

	// ExpiresIn is the lifetime of the access token in seconds, relative to
	// the moment the response was issued.
	// Example: 3600
	// Required by providers that issue expiring tokens.
	ExpiresIn *int64 `json:"expires_in,omitempty"`

	// RefreshToken is used to obtain a new access token.
	// Example: "1//0gLx2..."
	// A refresh_token grant response may omit it to mean "unchanged".
	RefreshToken *string `json:"refresh_token,omitempty"`

	// Scope is the granted scope when it differs from the requested one.
	// Example: "openid email"
	Scope *string `json:"scope,omitempty"`

	// IDToken is present when the "openid" scope was requested.
	// Example: "eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..."
	IDToken *string `json:"id_token,omitempty"`
}
