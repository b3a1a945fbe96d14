package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomapp/stockroom-server/internal/auth"
	domainerrors "github.com/stockroomapp/stockroom-server/internal/errors"
	"github.com/stockroomapp/stockroom-server/internal/store/sqlite"
)

// setupAuthTest creates an AuthService backed by a temporary sqlite store.
func setupAuthTest(t *testing.T) (*AuthService, *auth.TokenService) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	key := bytes.Repeat([]byte{0x2a}, 32)
	tokens, err := auth.NewTokenService(key, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	return NewAuthService(s, tokens, logger), tokens
}

func TestAuthService_Register(t *testing.T) {
	authService, _ := setupAuthTest(t)
	ctx := context.Background()

	user, err := authService.Register(ctx, RegisterRequest{
		Username: "alice",
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "correct horse battery staple", user.PasswordHash)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	authService, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := authService.Register(ctx, RegisterRequest{Username: "alice", Password: "password-one"})
	require.NoError(t, err)

	_, err = authService.Register(ctx, RegisterRequest{Username: "alice", Password: "password-two"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestAuthService_Register_ValidationErrors(t *testing.T) {
	authService, _ := setupAuthTest(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr string
	}{
		{"missing username", RegisterRequest{Password: "a valid password"}, "username"},
		{"short username", RegisterRequest{Username: "ab", Password: "a valid password"}, "username"},
		{"missing password", RegisterRequest{Username: "alice"}, "password"},
		{"short password", RegisterRequest{Username: "alice", Password: "short"}, "at least 8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authService.Register(ctx, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	authService, tokens := setupAuthTest(t)
	ctx := context.Background()

	_, err := authService.Register(ctx, RegisterRequest{Username: "alice", Password: "my secret password"})
	require.NoError(t, err)

	pair, err := authService.Login(ctx, LoginRequest{Username: "alice", Password: "my secret password"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// The access token from a password login is fresh.
	claims, err := tokens.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAccess())
	assert.True(t, claims.Fresh)

	refreshClaims, err := tokens.Verify(pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefresh())
	assert.False(t, refreshClaims.Fresh)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	authService, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := authService.Register(ctx, RegisterRequest{Username: "alice", Password: "my secret password"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown username", "mallory", "my secret password"},
		{"wrong password", "alice", "not the password"},
	}

	// Unknown usernames and wrong passwords produce the same error.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authService.Login(ctx, LoginRequest{Username: tt.username, Password: tt.password})
			assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		})
	}
}

func TestAuthService_AdminClaim_FirstUserOnly(t *testing.T) {
	authService, tokens := setupAuthTest(t)
	ctx := context.Background()

	_, err := authService.Register(ctx, RegisterRequest{Username: "first", Password: "first password"})
	require.NoError(t, err)
	_, err = authService.Register(ctx, RegisterRequest{Username: "second", Password: "second password"})
	require.NoError(t, err)

	firstPair, err := authService.Login(ctx, LoginRequest{Username: "first", Password: "first password"})
	require.NoError(t, err)
	secondPair, err := authService.Login(ctx, LoginRequest{Username: "second", Password: "second password"})
	require.NoError(t, err)

	firstClaims, err := tokens.Verify(firstPair.AccessToken)
	require.NoError(t, err)
	secondClaims, err := tokens.Verify(secondPair.AccessToken)
	require.NoError(t, err)

	assert.True(t, firstClaims.IsAdmin, "earliest-registered user carries is_admin")
	assert.False(t, secondClaims.IsAdmin)
}

func TestAuthService_Refresh_NotFresh(t *testing.T) {
	authService, tokens := setupAuthTest(t)
	ctx := context.Background()

	_, err := authService.Register(ctx, RegisterRequest{Username: "alice", Password: "my secret password"})
	require.NoError(t, err)

	pair, err := authService.Login(ctx, LoginRequest{Username: "alice", Password: "my secret password"})
	require.NoError(t, err)

	refreshClaims, err := authService.VerifyToken(ctx, pair.RefreshToken)
	require.NoError(t, err)

	accessToken, err := authService.Refresh(ctx, refreshClaims)
	require.NoError(t, err)

	claims, err := tokens.Verify(accessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAccess())
	assert.False(t, claims.Fresh, "refreshed access tokens are never fresh")
}

func TestAuthService_Refresh_DeletedUser(t *testing.T) {
	authService, _ := setupAuthTest(t)
	ctx := context.Background()

	user, err := authService.Register(ctx, RegisterRequest{Username: "alice", Password: "my secret password"})
	require.NoError(t, err)

	pair, err := authService.Login(ctx, LoginRequest{Username: "alice", Password: "my secret password"})
	require.NoError(t, err)

	refreshClaims, err := authService.VerifyToken(ctx, pair.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, authService.DeleteUser(ctx, user.ID))

	_, err = authService.Refresh(ctx, refreshClaims)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	authService, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := authService.Register(ctx, RegisterRequest{Username: "alice", Password: "my secret password"})
	require.NoError(t, err)

	pair, err := authService.Login(ctx, LoginRequest{Username: "alice", Password: "my secret password"})
	require.NoError(t, err)

	claims, err := authService.VerifyToken(ctx, pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, authService.Logout(ctx, claims.TokenID))

	_, err = authService.VerifyToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domainerrors.ErrTokenRevoked)

	// Logging out again with the same jti still succeeds.
	assert.NoError(t, authService.Logout(ctx, claims.TokenID))
}

func TestAuthService_VerifyToken_Invalid(t *testing.T) {
	authService, _ := setupAuthTest(t)

	_, err := authService.VerifyToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAuthService_GetAndDeleteUser(t *testing.T) {
	authService, _ := setupAuthTest(t)
	ctx := context.Background()

	user, err := authService.Register(ctx, RegisterRequest{Username: "alice", Password: "my secret password"})
	require.NoError(t, err)

	got, err := authService.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	require.NoError(t, authService.DeleteUser(ctx, user.ID))

	_, err = authService.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = authService.DeleteUser(ctx, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
