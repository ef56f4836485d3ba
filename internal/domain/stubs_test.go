package domain

import (
	"context"

	"github.com/google/uuid"
)

// Function-field stubs for the repository interfaces. Tests set only
// the calls they expect; anything else panics loudly.

type stubProfileRepo struct {
	createProfile        func(ctx context.Context, params CreateProfileParams) (*Profile, error)
	getProfileByUsername func(ctx context.Context, username string) (*Profile, error)
	getProfileByCreator  func(ctx context.Context, creatorID uuid.UUID) (*Profile, error)
	updateProfile        func(ctx context.Context, creatorID uuid.UUID, fields ProfileFields) (*Profile, error)
}

func (s *stubProfileRepo) CreateProfile(ctx context.Context, params CreateProfileParams) (*Profile, error) {
	return s.createProfile(ctx, params)
}

func (s *stubProfileRepo) GetProfileByUsername(ctx context.Context, username string) (*Profile, error) {
	return s.getProfileByUsername(ctx, username)
}

func (s *stubProfileRepo) GetProfileByCreator(ctx context.Context, creatorID uuid.UUID) (*Profile, error) {
	return s.getProfileByCreator(ctx, creatorID)
}

func (s *stubProfileRepo) UpdateProfile(ctx context.Context, creatorID uuid.UUID, fields ProfileFields) (*Profile, error) {
	return s.updateProfile(ctx, creatorID, fields)
}

type stubConnectionRepo struct {
	getConnection         func(ctx context.Context, ownerID, friendID uuid.UUID) (*Connection, error)
	getConnectionByID     func(ctx context.Context, id uuid.UUID) (*Connection, error)
	listConnections       func(ctx context.Context, ownerID uuid.UUID) ([]*ConnectionWithFriend, error)
	updateConnectionLevel func(ctx context.Context, id uuid.UUID, level PermissionLevel) (*Connection, error)
	deleteConnection      func(ctx context.Context, id uuid.UUID) error
}

func (s *stubConnectionRepo) GetConnection(ctx context.Context, ownerID, friendID uuid.UUID) (*Connection, error) {
	return s.getConnection(ctx, ownerID, friendID)
}

func (s *stubConnectionRepo) GetConnectionByID(ctx context.Context, id uuid.UUID) (*Connection, error) {
	return s.getConnectionByID(ctx, id)
}

func (s *stubConnectionRepo) ListConnections(ctx context.Context, ownerID uuid.UUID) ([]*ConnectionWithFriend, error) {
	return s.listConnections(ctx, ownerID)
}

func (s *stubConnectionRepo) UpdateConnectionLevel(ctx context.Context, id uuid.UUID, level PermissionLevel) (*Connection, error) {
	return s.updateConnectionLevel(ctx, id, level)
}

func (s *stubConnectionRepo) DeleteConnection(ctx context.Context, id uuid.UUID) error {
	return s.deleteConnection(ctx, id)
}

type stubRequestRepo struct {
	createFriendRequest    func(ctx context.Context, senderID, receiverID uuid.UUID) (*FriendRequest, error)
	getFriendRequestByID   func(ctx context.Context, id uuid.UUID) (*FriendRequest, error)
	getFriendRequestByPair func(ctx context.Context, senderID, receiverID uuid.UUID) (*FriendRequest, error)
	listIncomingRequests   func(ctx context.Context, receiverID uuid.UUID) ([]*IncomingRequest, error)
	acceptFriendRequest    func(ctx context.Context, id uuid.UUID, level PermissionLevel) (*Connection, error)
	deleteFriendRequest    func(ctx context.Context, id uuid.UUID) error
}

func (s *stubRequestRepo) CreateFriendRequest(ctx context.Context, senderID, receiverID uuid.UUID) (*FriendRequest, error) {
	return s.createFriendRequest(ctx, senderID, receiverID)
}

func (s *stubRequestRepo) GetFriendRequestByID(ctx context.Context, id uuid.UUID) (*FriendRequest, error) {
	return s.getFriendRequestByID(ctx, id)
}

func (s *stubRequestRepo) GetFriendRequestByPair(ctx context.Context, senderID, receiverID uuid.UUID) (*FriendRequest, error) {
	return s.getFriendRequestByPair(ctx, senderID, receiverID)
}

func (s *stubRequestRepo) ListIncomingRequests(ctx context.Context, receiverID uuid.UUID) ([]*IncomingRequest, error) {
	return s.listIncomingRequests(ctx, receiverID)
}

func (s *stubRequestRepo) AcceptFriendRequest(ctx context.Context, id uuid.UUID, level PermissionLevel) (*Connection, error) {
	return s.acceptFriendRequest(ctx, id, level)
}

func (s *stubRequestRepo) DeleteFriendRequest(ctx context.Context, id uuid.UUID) error {
	return s.deleteFriendRequest(ctx, id)
}

// recordingNotifier captures pushed events for assertions.
type recordingNotifier struct {
	events []recordedEvent
}

type recordedEvent struct {
	userID  uuid.UUID
	event   string
	payload interface{}
}

func (n *recordingNotifier) Notify(userID uuid.UUID, event string, payload interface{}) {
	n.events = append(n.events, recordedEvent{userID: userID, event: event, payload: payload})
}
