package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRequestNotFound    = errors.New("friend request not found")
	ErrSelfRequest        = errors.New("cannot send a friend request to yourself")
	ErrDuplicateRequest   = errors.New("friend request already sent")
	ErrNotRequestReceiver = errors.New("only the receiver may respond to a request")
)

// RequestStatus is the lifecycle state of a friend request. There is no
// rejected state: rejection deletes the row.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
)

// FriendRequest is a proposal from sender to receiver. Acceptance
// creates a Connection from the receiver to the sender at LevelContact.
// Direction matters: an A→B request and a B→A request are independent
// rows, and only the exact ordered pair is deduplicated.
type FriendRequest struct {
	ID         uuid.UUID     `json:"id"`
	SenderID   uuid.UUID     `json:"sender_id"`
	ReceiverID uuid.UUID     `json:"receiver_id"`
	Status     RequestStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}

// IncomingRequest is a pending request joined with the sender's account
// email for the receiver's dashboard.
type IncomingRequest struct {
	FriendRequest
	SenderEmail string `json:"sender_email"`
}

// FriendRequestRepository defines data access for friend requests. The
// store enforces uniqueness of the (sender_id, receiver_id) pair;
// implementations translate that violation to ErrDuplicateRequest.
// AcceptFriendRequest performs the status update and the connection
// insert atomically, so a failed acceptance never strands an accepted
// request without its connection.
type FriendRequestRepository interface {
	CreateFriendRequest(ctx context.Context, senderID, receiverID uuid.UUID) (*FriendRequest, error)
	GetFriendRequestByID(ctx context.Context, id uuid.UUID) (*FriendRequest, error)
	GetFriendRequestByPair(ctx context.Context, senderID, receiverID uuid.UUID) (*FriendRequest, error)
	ListIncomingRequests(ctx context.Context, receiverID uuid.UUID) ([]*IncomingRequest, error)
	AcceptFriendRequest(ctx context.Context, id uuid.UUID, level PermissionLevel) (*Connection, error)
	DeleteFriendRequest(ctx context.Context, id uuid.UUID) error
}
