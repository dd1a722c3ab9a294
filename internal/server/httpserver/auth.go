package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Fury174k/pharmstock/internal/common"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin verifies credentials and returns an access/refresh pair.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		writeDetail(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	pair, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeDetail(w, http.StatusUnauthorized, "Invalid username or password.")
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access":  pair.AccessToken,
		"refresh": pair.RefreshToken,
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *registerRequest) validate() map[string][]string {
	fields := map[string][]string{}
	if strings.TrimSpace(req.Username) == "" {
		fields["username"] = append(fields["username"], "This field may not be blank.")
	}
	if !strings.Contains(req.Email, "@") {
		fields["email"] = append(fields["email"], "Enter a valid email address.")
	}
	if len(req.Password) < 6 {
		fields["password"] = append(fields["password"], "Password must be at least 6 characters.")
	}
	return fields
}

// handleRegister creates an account and signs the caller in immediately:
// the response carries a token plus the new profile, so no follow-up
// profile fetch is needed.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, fields)
		return
	}

	user, pair, err := s.users.Register(r.Context(), strings.TrimSpace(req.Username), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeJSON(w, http.StatusBadRequest, map[string][]string{
				"username": {"A user with that username already exists."},
			})
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"token": pair.AccessToken,
		"user":  toUserJSON(user),
	})
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// handleRefreshToken rotates a refresh token for a fresh pair.
func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Refresh == "" {
		writeDetail(w, http.StatusBadRequest, "Refresh token is required.")
		return
	}

	pair, err := s.users.RefreshToken(r.Context(), req.Refresh)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access":  pair.AccessToken,
		"refresh": pair.RefreshToken,
	})
}

// handleGetUser returns the authenticated user's profile.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByID(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(user))
}
