package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockroomapp/stockroom-server/internal/http/response"
	"github.com/stockroomapp/stockroom-server/internal/service"
)

// handleRegister creates a new user account.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[service.RegisterRequest](r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if _, err := s.authService.Register(r.Context(), req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, map[string]string{"message": "user created successfully"}, s.logger)
}

// handleLogin exchanges credentials for a fresh access token and a refresh token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[service.LoginRequest](r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	pair, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, pair, s.logger)
}

// handleLogout revokes the presented token.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r.Context())

	if err := s.authService.Logout(r.Context(), claims.TokenID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Message(w, "successfully logged out", s.logger)
}

// handleRefresh mints a non-fresh access token from a refresh token.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r.Context())

	accessToken, err := s.authService.Refresh(r.Context(), claims)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]string{"access_token": accessToken}, s.logger)
}

// handleGetUser returns a user by id. The password hash never leaves the server.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.authService.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, user, s.logger)
}

// handleDeleteUser removes a user account.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.authService.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Message(w, "user deleted", s.logger)
}
