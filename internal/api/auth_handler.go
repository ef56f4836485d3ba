package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Duke242/mycontacts/internal/auth"
	"github.com/Duke242/mycontacts/internal/domain"
	"github.com/Duke242/mycontacts/internal/middleware"
	"github.com/Duke242/mycontacts/pkg/response"
	"github.com/Duke242/mycontacts/pkg/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *domain.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *domain.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	req.Email = validator.SanitizeEmail(req.Email)
	if !validator.ValidateEmail(req.Email) {
		response.BadRequest(w, "invalid email address")
		return
	}
	if errs := validator.ValidatePassword(req.Password); errs.HasErrors() {
		response.BadRequest(w, errs.Error())
		return
	}
	req.Name = validator.SanitizeString(req.Name, 100)
	if !validator.ValidateName(req.Name) {
		response.BadRequest(w, "name must be 2-100 characters")
		return
	}

	result, err := h.authService.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			response.Conflict(w, "an account with this email already exists")
			return
		}
		h.logger.Error("registration failed", zap.Error(err))
		response.InternalError(w, "registration failed")
		return
	}

	response.Created(w, result)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	req.Email = validator.SanitizeEmail(req.Email)
	if !validator.ValidateEmail(req.Email) || req.Password == "" {
		response.BadRequest(w, "email and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			response.Unauthorized(w, "invalid email or password")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		response.InternalError(w, "login failed")
		return
	}

	response.OK(w, result)
}

// Refresh handles POST /auth/refresh with token rotation.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.RefreshToken == "" {
		response.BadRequest(w, "refresh_token is required")
		return
	}

	result, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			response.Unauthorized(w, "refresh token has expired")
			return
		}
		if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, domain.ErrTokenRevoked) {
			response.Unauthorized(w, "invalid refresh token")
			return
		}
		h.logger.Error("token refresh failed", zap.Error(err))
		response.InternalError(w, "token refresh failed")
		return
	}

	response.OK(w, result)
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.RefreshToken == "" {
		response.BadRequest(w, "refresh_token is required")
		return
	}

	if err := h.authService.Logout(r.Context(), req.RefreshToken); err != nil {
		// Token may already be revoked; logout still succeeds.
		h.logger.Warn("logout failed", zap.Error(err))
	}

	response.NoContent(w)
}

// Me handles GET /me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	account, err := h.authService.GetAccountByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			response.NotFound(w, "account not found")
			return
		}
		h.logger.Error("get account failed", zap.Error(err))
		response.InternalError(w, "failed to get account")
		return
	}

	response.OK(w, account)
}
