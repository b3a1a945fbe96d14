package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/stockroomapp/stockroom-server/internal/auth"
	domainerrors "github.com/stockroomapp/stockroom-server/internal/errors"
	"github.com/stockroomapp/stockroom-server/internal/http/response"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const contextKeyClaims contextKey = "claims"

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", domainerrors.ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", domainerrors.ErrInvalidToken.WithCause(
			domainerrors.Validation("authorization header must be of the form 'Bearer <token>'"))
	}

	return parts[1], nil
}

// requireAuth validates an access token, checks the revocation ledger, and
// attaches the claims to the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}

		claims, err := s.authService.VerifyToken(r.Context(), tokenString)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}

		// A refresh token cannot stand in for an access token.
		if !claims.IsAccess() {
			response.HandleError(w, domainerrors.ErrInvalidToken, s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireFresh rejects access tokens minted through the refresh exchange.
// Must be used after requireAuth.
func (s *Server) requireFresh(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := getClaims(r.Context())
		if claims == nil || !claims.Fresh {
			response.HandleError(w, domainerrors.ErrFreshRequired, s.logger)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireAnyToken accepts either token class and skips the revocation check.
// Only logout runs behind it, so a second logout with the same token still
// succeeds.
func (s *Server) requireAnyToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}

		claims, err := s.authService.ParseToken(tokenString)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRefresh validates a refresh-class token for the refresh exchange.
func (s *Server) requireRefresh(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}

		claims, err := s.authService.VerifyToken(r.Context(), tokenString)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}

		if !claims.IsRefresh() {
			response.HandleError(w, domainerrors.ErrInvalidToken, s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getClaims extracts the verified token claims from request context.
// Returns nil outside of guarded routes.
func getClaims(ctx context.Context) *auth.Claims {
	if claims, ok := ctx.Value(contextKeyClaims).(*auth.Claims); ok {
		return claims
	}
	return nil
}
