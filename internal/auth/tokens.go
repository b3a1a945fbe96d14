package auth

import (
	"github.com/go-json-experiment/json"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"

	"github.com/stockroomapp/stockroom-server/internal/domain"
	domainerrors "github.com/stockroomapp/stockroom-server/internal/errors"
)

const (
	tokenIssuer   = "stockroom-server"
	tokenAudience = "stockroom-client"

	// PASETO v4 symmetric key requirement.
	keyBytesSize = 32 // 256 bits
)

// AdminFunc derives the is_admin claim for a user at issuance time.
// It is injected at construction so the policy lives in one place instead
// of a global callback.
type AdminFunc func(userID string) bool

// TokenService mints and verifies PASETO v4.local tokens.
// Both access and refresh tokens are encrypted tokens carrying Claims;
// the type claim tells the two classes apart.
type TokenService struct {
	symmetricKey    paseto.V4SymmetricKey
	accessDuration  time.Duration
	refreshDuration time.Duration
}

// NewTokenService creates a token service from a raw 32-byte symmetric key.
func NewTokenService(key []byte, accessDuration, refreshDuration time.Duration) (*TokenService, error) {
	if len(key) != keyBytesSize {
		return nil, fmt.Errorf("token key must be exactly %d bytes, got %d", keyBytesSize, len(key))
	}

	symmetricKey, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{
		symmetricKey:    symmetricKey,
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
	}, nil
}

// IssueAccessToken creates an access token for the user.
// fresh is true only when the token is minted directly from a password login;
// tokens minted via the refresh exchange are never fresh.
func (s *TokenService) IssueAccessToken(user *domain.User, fresh, isAdmin bool) (string, error) {
	return s.issue(user, TokenTypeAccess, fresh, isAdmin, s.accessDuration)
}

// IssueRefreshToken creates a refresh token for the user.
// Refresh tokens are never fresh and can only be presented to the refresh
// endpoint.
func (s *TokenService) IssueRefreshToken(user *domain.User, isAdmin bool) (string, error) {
	return s.issue(user, TokenTypeRefresh, false, isAdmin, s.refreshDuration)
}

func (s *TokenService) issue(user *domain.User, tokenType TokenType, fresh, isAdmin bool, lifetime time.Duration) (string, error) {
	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(user.ID)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(lifetime))

	// The jti is the revocation key; it must be unique per token.
	token.SetJti(uuid.NewString())

	//nolint:errcheck // Token.Set only errors on invalid types, which we control
	_ = token.Set("user_id", user.ID)
	//nolint:errcheck // Token.Set only errors on invalid types, which we control
	_ = token.Set("type", string(tokenType))
	//nolint:errcheck // Token.Set only errors on invalid types, which we control
	_ = token.Set("fresh", fresh)
	//nolint:errcheck // Token.Set only errors on invalid types, which we control
	_ = token.Set("is_admin", isAdmin)

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// Verify decrypts and validates a token, returning its claims.
// Expiry is checked separately from the other rules so that an expired token
// is reported as ErrTokenExpired rather than the generic ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	// The default parser rejects expired tokens during parsing, which would
	// collapse expiry into the generic invalid-token failure. Skip that rule
	// here and check exp/nbf explicitly below.
	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WithCause(err)
	}

	var claims Claims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, domainerrors.ErrInvalidToken.WithCause(err)
	}

	now := time.Now()
	if now.After(claims.Expiration) {
		return nil, domainerrors.ErrTokenExpired
	}
	if now.Before(claims.NotBefore) {
		return nil, domainerrors.ErrInvalidToken
	}

	return &claims, nil
}

// AccessTokenDuration returns the configured access token lifetime.
func (s *TokenService) AccessTokenDuration() time.Duration {
	return s.accessDuration
}

// RefreshTokenDuration returns the configured refresh token lifetime.
func (s *TokenService) RefreshTokenDuration() time.Duration {
	return s.refreshDuration
}
