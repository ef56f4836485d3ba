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

// RequestHandler handles the friend request workflow.
type RequestHandler struct {
	requestService *domain.FriendRequestService
	logger         *zap.Logger
}

// NewRequestHandler creates a new friend request handler.
func NewRequestHandler(requestService *domain.FriendRequestService, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{requestService: requestService, logger: logger}
}

// SendRequest handles POST /requests.
func (h *RequestHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	var req struct {
		ReceiverID string `json:"receiver_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		response.BadRequest(w, "invalid receiver id")
		return
	}

	created, err := h.requestService.Send(r.Context(), userID, receiverID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfRequest):
			response.Conflict(w, "you cannot send a friend request to yourself")
		case errors.Is(err, domain.ErrDuplicateRequest):
			response.Conflict(w, "friend request already sent")
		default:
			h.logger.Error("failed to send friend request", zap.Error(err))
			response.InternalError(w, "failed to send friend request")
		}
		return
	}

	response.Created(w, created)
}

// ListIncoming handles GET /requests.
func (h *RequestHandler) ListIncoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	requests, err := h.requestService.ListIncoming(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list friend requests", zap.Error(err))
		response.InternalError(w, "failed to list friend requests")
		return
	}

	response.OK(w, requests)
}

// Respond handles POST /requests/{id}/respond.
func (h *RequestHandler) Respond(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	requestID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid request id")
		return
	}

	var req struct {
		Accept bool `json:"accept"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	conn, err := h.requestService.Respond(r.Context(), userID, requestID, req.Accept)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRequestNotFound):
			response.NotFound(w, "friend request not found")
		case errors.Is(err, domain.ErrNotRequestReceiver):
			response.Forbidden(w, "only the receiver may respond to this request")
		default:
			h.logger.Error("failed to respond to friend request", zap.Error(err))
			response.InternalError(w, "failed to respond to friend request")
		}
		return
	}

	if conn == nil {
		response.NoContent(w)
		return
	}
	response.OK(w, conn)
}
