package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stockroomapp/stockroom-server/internal/auth"
	"github.com/stockroomapp/stockroom-server/internal/domain"
	domainerrors "github.com/stockroomapp/stockroom-server/internal/errors"
	"github.com/stockroomapp/stockroom-server/internal/id"
	"github.com/stockroomapp/stockroom-server/internal/store"
)

// AuthService handles account lifecycle and token minting.
// Token verification plus the revocation check lives here too so the
// authorization middleware has a single entry point.
type AuthService struct {
	store  store.Store
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store store.Store, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
		logger: logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is returned from a successful login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
	}
	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}
	user.ID = userID
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("a user with that username already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "username", user.Username)

	return user, nil
}

// Login authenticates a user and mints a fresh access token plus a refresh
// token. Unknown usernames and wrong passwords are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid username or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("invalid username or password")
	}

	isAdmin := s.isAdmin(ctx, user.ID)

	accessToken, err := s.tokens.IssueAccessToken(user, true, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID)

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges verified refresh-token claims for a new access token.
// The exchanged token is never fresh, so it cannot reach fresh-guarded routes.
func (s *AuthService) Refresh(ctx context.Context, claims *auth.Claims) (string, error) {
	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The account went away after the token was minted.
			return "", domainerrors.ErrInvalidToken
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	accessToken, err := s.tokens.IssueAccessToken(user, false, s.isAdmin(ctx, user.ID))
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}

	return accessToken, nil
}

// Logout adds the token's jti to the revocation ledger.
// Revoking an already-revoked token succeeds; logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	if err := s.store.RevokeToken(ctx, jti); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.logger.Info("Token revoked", "jti", jti)
	return nil
}

// VerifyToken validates a bearer token and checks the revocation ledger.
// Used by the authorization middleware for both token classes.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	revoked, err := s.store.IsTokenRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, domainerrors.ErrTokenRevoked
	}

	return claims, nil
}

// ParseToken validates a bearer token without consulting the revocation
// ledger. Logout runs on this path so revoking an already-revoked token
// stays a no-op success instead of bouncing off its own ledger entry.
func (s *AuthService) ParseToken(tokenString string) (*auth.Claims, error) {
	return s.tokens.Verify(tokenString)
}

// GetUser returns a user by id.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user account.
func (s *AuthService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.logger.Info("User deleted", "user_id", userID)
	return nil
}

// isAdmin derives the is_admin claim: the earliest-registered user is the
// admin. Derivation failures deny the claim rather than failing the login.
func (s *AuthService) isAdmin(ctx context.Context, userID string) bool {
	firstID, err := s.store.FirstUserID(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("Failed to derive admin claim", "user_id", userID, "error", err)
		}
		return false
	}
	return firstID == userID
}
