package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Duke242/mycontacts/internal/domain"
	"github.com/Duke242/mycontacts/internal/middleware"
	"github.com/Duke242/mycontacts/pkg/response"
)

// ProfileHandler handles profile claim, edit and the public view.
type ProfileHandler struct {
	profileService *domain.ProfileService
	logger         *zap.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService *domain.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, logger: logger}
}

// ProfileRequest is the claim/update request body. DOB is YYYY-MM-DD.
type ProfileRequest struct {
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Bio       string `json:"bio"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	DOB       string `json:"dob"`
}

func (req *ProfileRequest) fields() (domain.ProfileFields, error) {
	fields := domain.ProfileFields{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		Facebook:  req.Facebook,
		Twitter:   req.Twitter,
		Instagram: req.Instagram,
		Bio:       req.Bio,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if req.DOB != "" {
		dob, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			return fields, err
		}
		fields.DOB = &dob
	}
	return fields, nil
}

// Claim handles POST /profiles: the one-time username claim.
func (h *ProfileHandler) Claim(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	fields, err := req.fields()
	if err != nil {
		response.BadRequest(w, "dob must be YYYY-MM-DD")
		return
	}

	profile, err := h.profileService.Claim(r.Context(), userID, req.Username, fields)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidUsername):
			response.BadRequest(w, "username must be 3-30 letters, numbers, hyphens or underscores")
		case errors.Is(err, domain.ErrUsernameTaken):
			response.Conflict(w, "username is already taken, please choose a different username")
		case errors.Is(err, domain.ErrProfileExists):
			response.Conflict(w, "this account already has a profile")
		default:
			h.logger.Error("profile claim failed", zap.Error(err))
			response.InternalError(w, "failed to create profile")
		}
		return
	}

	response.Created(w, profile)
}

// GetOwn handles GET /profiles/me.
func (h *ProfileHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	profile, err := h.profileService.GetOwn(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			response.NotFound(w, "no profile claimed yet")
			return
		}
		h.logger.Error("get own profile failed", zap.Error(err))
		response.InternalError(w, "failed to get profile")
		return
	}

	response.OK(w, profile)
}

// Update handles PUT /profiles/me. The username is never updated.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	fields, err := req.fields()
	if err != nil {
		response.BadRequest(w, "dob must be YYYY-MM-DD")
		return
	}

	profile, err := h.profileService.Update(r.Context(), userID, fields)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			response.NotFound(w, "no profile claimed yet")
			return
		}
		h.logger.Error("profile update failed", zap.Error(err))
		response.InternalError(w, "failed to update profile")
		return
	}

	response.OK(w, profile)
}

// View handles GET /profiles/{username}: the public card. The route
// sits behind optional auth, so the viewer may be anonymous. An
// unclaimed username is a 404 the UI renders as "this URL is available
// for you", not a failure.
func (h *ProfileHandler) View(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var viewerID *uuid.UUID
	if id, ok := middleware.GetUserID(r.Context()); ok {
		viewerID = &id
	}

	visible, err := h.profileService.View(r.Context(), username, viewerID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			response.Error(w, http.StatusNotFound, "USERNAME_AVAILABLE", "this URL is available for you")
			return
		}
		h.logger.Error("profile view failed", zap.Error(err), zap.String("username", username))
		response.InternalError(w, "failed to load profile")
		return
	}

	response.OK(w, visible)
}

// CheckAvailability handles GET /usernames/{username}/availability.
func (h *ProfileHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	available, err := h.profileService.CheckAvailability(r.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidUsername) {
			response.BadRequest(w, "username must be 3-30 letters, numbers, hyphens or underscores")
			return
		}
		h.logger.Error("availability check failed", zap.Error(err), zap.String("username", username))
		response.InternalError(w, "failed to check availability")
		return
	}

	response.OK(w, map[string]interface{}{
		"username":  username,
		"available": available,
	})
}
