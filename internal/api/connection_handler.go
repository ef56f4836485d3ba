package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Duke242/mycontacts/internal/domain"
	"github.com/Duke242/mycontacts/internal/middleware"
	"github.com/Duke242/mycontacts/pkg/response"
)

// ConnectionHandler manages the owner-facing permission registry.
type ConnectionHandler struct {
	connectionService *domain.ConnectionService
	logger            *zap.Logger
}

// NewConnectionHandler creates a new connection handler.
func NewConnectionHandler(connectionService *domain.ConnectionService, logger *zap.Logger) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService, logger: logger}
}

// List handles GET /connections.
func (h *ConnectionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	connections, err := h.connectionService.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list connections", zap.Error(err))
		response.InternalError(w, "failed to list connections")
		return
	}

	response.OK(w, connections)
}

// SetLevel handles PUT /connections/{id}/level.
func (h *ConnectionHandler) SetLevel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	connectionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid connection id")
		return
	}

	var req struct {
		Level domain.PermissionLevel `json:"level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	updated, err := h.connectionService.SetLevel(r.Context(), userID, connectionID, req.Level)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidLevel):
			response.BadRequest(w, "permission level must be between 0 and 3")
		case errors.Is(err, domain.ErrConnectionNotFound):
			response.NotFound(w, "connection not found")
		case errors.Is(err, domain.ErrNotConnectionOwner):
			response.Forbidden(w, "only the granting owner may change this connection")
		default:
			h.logger.Error("failed to update connection level", zap.Error(err))
			response.InternalError(w, "failed to update connection level")
		}
		return
	}

	response.OK(w, updated)
}

// Remove handles DELETE /connections/{id}.
func (h *ConnectionHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	connectionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid connection id")
		return
	}

	if err := h.connectionService.Remove(r.Context(), userID, connectionID); err != nil {
		switch {
		case errors.Is(err, domain.ErrConnectionNotFound):
			response.NotFound(w, "connection not found")
		case errors.Is(err, domain.ErrNotConnectionOwner):
			response.Forbidden(w, "only the granting owner may remove this connection")
		default:
			h.logger.Error("failed to remove connection", zap.Error(err))
			response.InternalError(w, "failed to remove connection")
		}
		return
	}

	response.NoContent(w)
}
