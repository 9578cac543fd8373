package handler

import (
	"errors"
	"net/http"
	"strings"

	"scentra-be/internal/logger"
	"scentra-be/internal/user"
	"scentra-be/internal/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	svc user.Service
}

func NewAuthHandler(svc user.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "bad_request",
			"email and a password of at least 8 characters are required")
		return
	}

	token, u, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			writeError(w, http.StatusConflict, "conflict", "email already registered")
			return
		}
		logger.FromCtx(r.Context()).Error("register failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to register")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, Email: u.Email, Role: string(u.Role)})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")
			return
		}
		logger.FromCtx(r.Context()).Error("login failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, Email: u.Email, Role: string(u.Role)})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	email := utils.GetUserEmailFromContext(r.Context())
	if email == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	u, err := h.svc.GetUserByEmail(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":    u.ID,
		"email": u.Email,
		"role":  u.Role,
	})
}
