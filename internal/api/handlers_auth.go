package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/JustinTDCT/SkipVault/internal/auth"
	"github.com/JustinTDCT/SkipVault/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		s.respondError(w, http.StatusBadRequest, "username is required")
		return
	}
	if err := auth.ValidatePassword(req.Password, 8, false); err != nil {
		s.respondError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	// The first account becomes the admin.
	role := models.RoleUser
	if count, err := s.userRepo.Count(); err == nil && count == 0 {
		role = models.RoleAdmin
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
		Role:         role,
	}
	if err := s.userRepo.Create(user); err != nil {
		s.respondError(w, http.StatusConflict, "username already taken")
		return
	}

	s.respondJSON(w, http.StatusCreated, Response{Success: true, Data: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	user.PasswordHash = ""
	s.respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    LoginResponse{Token: token, User: user},
	})
}
