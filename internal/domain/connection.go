package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrConnectionNotFound = errors.New("connection not found")
	ErrInvalidLevel       = errors.New("permission level must be between 0 and 3")
	ErrNotConnectionOwner = errors.New("only the granting owner may change a connection")
)

// Connection is a directional grant: UserID (the profile owner) lets
// FriendID view their profile at Level. A granting B level 2 says
// nothing about what B grants A.
type Connection struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	FriendID  uuid.UUID       `json:"friend_id"`
	Level     PermissionLevel `json:"permission_level"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ConnectionWithFriend is a connection joined with the friend's account
// email for display on the owner's dashboard.
type ConnectionWithFriend struct {
	Connection
	FriendEmail string `json:"friend_email"`
}

// ConnectionRepository defines data access for connection grants. At
// most one row exists per (user_id, friend_id) ordered pair, enforced
// by a unique index in the store. DeleteConnection also clears the
// accepted friend request that created the grant, so the pair can go
// through the request workflow again.
type ConnectionRepository interface {
	GetConnection(ctx context.Context, ownerID, friendID uuid.UUID) (*Connection, error)
	GetConnectionByID(ctx context.Context, id uuid.UUID) (*Connection, error)
	ListConnections(ctx context.Context, ownerID uuid.UUID) ([]*ConnectionWithFriend, error)
	UpdateConnectionLevel(ctx context.Context, id uuid.UUID, level PermissionLevel) (*Connection, error)
	DeleteConnection(ctx context.Context, id uuid.UUID) error
}
