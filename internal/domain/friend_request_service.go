package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// FriendRequestService orchestrates the request workflow. Acceptance is
// the one compound write in the system: marking the request accepted
// and creating the level-1 connection happen in a single repository
// transaction.
type FriendRequestService struct {
	requests FriendRequestRepository
	notifier Notifier
}

// NewFriendRequestService creates a new friend request service. The
// notifier may be nil, in which case no events are pushed.
func NewFriendRequestService(requests FriendRequestRepository, notifier Notifier) *FriendRequestService {
	return &FriendRequestService{requests: requests, notifier: notifier}
}

// Send creates a pending request from sender to receiver. Self-requests
// and duplicates of the exact ordered pair are rejected; a reverse
// direction request is an independent row. The existence check here
// only improves the error message: two concurrent sends race, and the
// unique index on (sender_id, receiver_id) is what actually holds, with
// its violation surfacing as the same ErrDuplicateRequest.
func (s *FriendRequestService) Send(ctx context.Context, senderID, receiverID uuid.UUID) (*FriendRequest, error) {
	if senderID == receiverID {
		return nil, ErrSelfRequest
	}

	_, err := s.requests.GetFriendRequestByPair(ctx, senderID, receiverID)
	if err == nil {
		return nil, ErrDuplicateRequest
	}
	if !errors.Is(err, ErrRequestNotFound) {
		return nil, err
	}

	req, err := s.requests.CreateFriendRequest(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(receiverID, EventRequestReceived, req)
	}
	return req, nil
}

// ListIncoming returns the receiver's pending requests, newest first,
// each carrying the sender's account email.
func (s *FriendRequestService) ListIncoming(ctx context.Context, receiverID uuid.UUID) ([]*IncomingRequest, error) {
	return s.requests.ListIncomingRequests(ctx, receiverID)
}

// Respond accepts or rejects a pending request. Only the receiver may
// respond. Acceptance creates the connection granting the sender
// level-1 access to the receiver's profile and returns it; rejection
// deletes the request and returns nil.
func (s *FriendRequestService) Respond(ctx context.Context, receiverID, requestID uuid.UUID, accept bool) (*Connection, error) {
	req, err := s.requests.GetFriendRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ReceiverID != receiverID {
		return nil, ErrNotRequestReceiver
	}
	if req.Status != RequestPending {
		return nil, ErrRequestNotFound
	}

	if !accept {
		if err := s.requests.DeleteFriendRequest(ctx, req.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	conn, err := s.requests.AcceptFriendRequest(ctx, req.ID, LevelContact)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(req.SenderID, EventRequestAccepted, conn)
	}
	return conn, nil
}
