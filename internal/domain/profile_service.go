package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Duke242/mycontacts/pkg/validator"
)

// ProfileService handles claiming, editing and viewing profiles. View
// is where the visibility resolver meets the stores: it assembles the
// profile row, the viewer's connection (if any) and the pending-request
// hint, then delegates the redaction to ResolveVisibility.
type ProfileService struct {
	profiles    ProfileRepository
	connections ConnectionRepository
	requests    FriendRequestRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(profiles ProfileRepository, connections ConnectionRepository, requests FriendRequestRepository) *ProfileService {
	return &ProfileService{
		profiles:    profiles,
		connections: connections,
		requests:    requests,
	}
}

// Claim creates the account's profile under the requested username. The
// service-level checks only improve the error message; the storage
// unique indexes on username and creator_id are the actual guarantee.
func (s *ProfileService) Claim(ctx context.Context, creatorID uuid.UUID, username string, fields ProfileFields) (*Profile, error) {
	if !validator.ValidateUsername(username) {
		return nil, ErrInvalidUsername
	}
	if validator.IsReservedUsername(username) {
		return nil, ErrUsernameTaken
	}

	_, err := s.profiles.GetProfileByCreator(ctx, creatorID)
	if err == nil {
		return nil, ErrProfileExists
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	return s.profiles.CreateProfile(ctx, CreateProfileParams{
		CreatorID: creatorID,
		Username:  username,
		Fields:    fields,
	})
}

// Update replaces the owner's mutable profile fields. The username
// never changes.
func (s *ProfileService) Update(ctx context.Context, creatorID uuid.UUID, fields ProfileFields) (*Profile, error) {
	return s.profiles.UpdateProfile(ctx, creatorID, fields)
}

// GetOwn returns the caller's own profile.
func (s *ProfileService) GetOwn(ctx context.Context, creatorID uuid.UUID) (*Profile, error) {
	return s.profiles.GetProfileByCreator(ctx, creatorID)
}

// CheckAvailability reports whether a username can still be claimed.
// Reserved usernames are always unavailable and short-circuit before
// any storage lookup. An invalid username is an error, not
// unavailability.
func (s *ProfileService) CheckAvailability(ctx context.Context, username string) (bool, error) {
	if !validator.ValidateUsername(username) {
		return false, ErrInvalidUsername
	}
	if validator.IsReservedUsername(username) {
		return false, nil
	}

	_, err := s.profiles.GetProfileByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// View resolves the profile at username for the given viewer (nil for
// anonymous visitors). ErrProfileNotFound signals an unclaimed
// username, which callers present as "this URL is available" rather
// than a failure.
func (s *ProfileService) View(ctx context.Context, username string, viewerID *uuid.UUID) (*VisibleProfile, error) {
	profile, err := s.profiles.GetProfileByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	var conn *Connection
	pending := false
	if viewerID != nil && *viewerID != profile.CreatorID {
		conn, err = s.connections.GetConnection(ctx, profile.CreatorID, *viewerID)
		if err != nil && !errors.Is(err, ErrConnectionNotFound) {
			return nil, err
		}
		if conn == nil {
			req, err := s.requests.GetFriendRequestByPair(ctx, *viewerID, profile.CreatorID)
			if err != nil && !errors.Is(err, ErrRequestNotFound) {
				return nil, err
			}
			pending = req != nil && req.Status == RequestPending
		}
	}

	return ResolveVisibility(viewerID, profile, conn, pending), nil
}
