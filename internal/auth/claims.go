package auth

import "time"

// TokenType distinguishes the two token classes the issuer mints.
type TokenType string

const (
	// TokenTypeAccess authorizes API calls. Access tokens may be fresh
	// (issued by a password login) or stale (issued by a refresh exchange).
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh is exchangeable only for a new, non-fresh access token.
	TokenTypeRefresh TokenType = "refresh"
)

// Claims represents the claims stored in a PASETO v4.local token.
// Both token classes share this shape; Type tells them apart.
type Claims struct {
	UserID  string    `json:"user_id"`
	Type    TokenType `json:"type"`
	Fresh   bool      `json:"fresh"`
	IsAdmin bool      `json:"is_admin"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// IsAccess reports whether the claims belong to an access-class token.
func (c *Claims) IsAccess() bool {
	return c.Type == TokenTypeAccess
}

// IsRefresh reports whether the claims belong to a refresh-class token.
func (c *Claims) IsRefresh() bool {
	return c.Type == TokenTypeRefresh
}
