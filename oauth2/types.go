package oauth2

// TokenType is the access token type from RFC 6749 section 7.1.
type TokenType string

const (
	// TokenTypeBearer is the RFC 6750 bearer token type.
	// Presented as: "Authorization: Bearer <access_token>"
	// Matching against responses is case-insensitive.
	TokenTypeBearer TokenType = "Bearer"
)

// String returns the literal as it appears on the wire.
func (t TokenType) String() string {
	return string(t)
}
