package domain

import (
	"context"

	"github.com/google/uuid"
)

// ConnectionService is the permission registry: the granting owner
// lists, retiers and removes their connections. Nobody else may touch a
// grant, including the friend it names.
type ConnectionService struct {
	connections ConnectionRepository
	notifier    Notifier
}

// NewConnectionService creates a new connection service. The notifier
// may be nil, in which case no events are pushed.
func NewConnectionService(connections ConnectionRepository, notifier Notifier) *ConnectionService {
	return &ConnectionService{connections: connections, notifier: notifier}
}

// List returns all grants made by the owner, with friend emails.
func (s *ConnectionService) List(ctx context.Context, ownerID uuid.UUID) ([]*ConnectionWithFriend, error) {
	return s.connections.ListConnections(ctx, ownerID)
}

// SetLevel changes the permission level of a grant. The level is
// validated here at the component boundary, not just in the UI.
func (s *ConnectionService) SetLevel(ctx context.Context, ownerID, connectionID uuid.UUID, level PermissionLevel) (*Connection, error) {
	if !level.Valid() {
		return nil, ErrInvalidLevel
	}

	conn, err := s.connections.GetConnectionByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if conn.UserID != ownerID {
		return nil, ErrNotConnectionOwner
	}

	updated, err := s.connections.UpdateConnectionLevel(ctx, conn.ID, level)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(updated.FriendID, EventConnectionUpdated, updated)
	}
	return updated, nil
}

// Remove deletes a grant. The friend reverts to stranger-level
// visibility on their next view and may send a fresh request, since the
// accepted request row is cleared along with the connection.
func (s *ConnectionService) Remove(ctx context.Context, ownerID, connectionID uuid.UUID) error {
	conn, err := s.connections.GetConnectionByID(ctx, connectionID)
	if err != nil {
		return err
	}
	if conn.UserID != ownerID {
		return ErrNotConnectionOwner
	}

	if err := s.connections.DeleteConnection(ctx, conn.ID); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.Notify(conn.FriendID, EventConnectionRemoved, map[string]string{"connection_id": conn.ID.String()})
	}
	return nil
}
