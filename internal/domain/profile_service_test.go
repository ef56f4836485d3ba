package domain

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestProfileServiceClaim(t *testing.T) {
	creatorID := uuid.New()

	t.Run("creates profile for a fresh account", func(t *testing.T) {
		profiles := &stubProfileRepo{
			getProfileByCreator: func(ctx context.Context, id uuid.UUID) (*Profile, error) {
				return nil, ErrProfileNotFound
			},
			createProfile: func(ctx context.Context, params CreateProfileParams) (*Profile, error) {
				require.Equal(t, creatorID, params.CreatorID)
				require.Equal(t, "alice", params.Username)
				return &Profile{ID: uuid.New(), CreatorID: creatorID, Username: params.Username}, nil
			},
		}
		svc := NewProfileService(profiles, nil, nil)

		p, err := svc.Claim(context.Background(), creatorID, "alice", ProfileFields{FirstName: "Alice"})
		require.NoError(t, err)
		require.Equal(t, "alice", p.Username)
	})

	t.Run("rejects malformed usernames without touching storage", func(t *testing.T) {
		svc := NewProfileService(&stubProfileRepo{}, nil, nil)

		for _, username := range []string{"", "ab", "has space", "emoji😀", "way-too-long-username-over-thirty-chars"} {
			_, err := svc.Claim(context.Background(), creatorID, username, ProfileFields{})
			require.ErrorIs(t, err, ErrInvalidUsername, "username %q", username)
		}
	})

	t.Run("rejects reserved usernames case-insensitively", func(t *testing.T) {
		// No stub functions are set: any storage call panics, which
		// proves the reserved check short-circuits.
		svc := NewProfileService(&stubProfileRepo{}, nil, nil)

		for _, username := range []string{"admin", "Admin", "ADMIN", "root", "Support"} {
			_, err := svc.Claim(context.Background(), creatorID, username, ProfileFields{})
			require.ErrorIs(t, err, ErrUsernameTaken, "username %q", username)
		}
	})

	t.Run("rejects a second profile for the same account", func(t *testing.T) {
		profiles := &stubProfileRepo{
			getProfileByCreator: func(ctx context.Context, id uuid.UUID) (*Profile, error) {
				return &Profile{CreatorID: id, Username: "existing"}, nil
			},
		}
		svc := NewProfileService(profiles, nil, nil)

		_, err := svc.Claim(context.Background(), creatorID, "newname", ProfileFields{})
		require.ErrorIs(t, err, ErrProfileExists)
	})

	t.Run("surfaces the storage uniqueness verdict", func(t *testing.T) {
		profiles := &stubProfileRepo{
			getProfileByCreator: func(ctx context.Context, id uuid.UUID) (*Profile, error) {
				return nil, ErrProfileNotFound
			},
			createProfile: func(ctx context.Context, params CreateProfileParams) (*Profile, error) {
				return nil, ErrUsernameTaken
			},
		}
		svc := NewProfileService(profiles, nil, nil)

		_, err := svc.Claim(context.Background(), creatorID, "bob", ProfileFields{})
		require.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestProfileServiceCheckAvailability(t *testing.T) {
	t.Run("unclaimed username is available", func(t *testing.T) {
		profiles := &stubProfileRepo{
			getProfileByUsername: func(ctx context.Context, username string) (*Profile, error) {
				return nil, ErrProfileNotFound
			},
		}
		svc := NewProfileService(profiles, nil, nil)

		available, err := svc.CheckAvailability(context.Background(), "freshname")
		require.NoError(t, err)
		require.True(t, available)
	})

	t.Run("claimed username is unavailable", func(t *testing.T) {
		profiles := &stubProfileRepo{
			getProfileByUsername: func(ctx context.Context, username string) (*Profile, error) {
				return &Profile{Username: username}, nil
			},
		}
		svc := NewProfileService(profiles, nil, nil)

		available, err := svc.CheckAvailability(context.Background(), "taken")
		require.NoError(t, err)
		require.False(t, available)
	})

	t.Run("reserved username is unavailable without a lookup", func(t *testing.T) {
		svc := NewProfileService(&stubProfileRepo{}, nil, nil)

		available, err := svc.CheckAvailability(context.Background(), "Moderator")
		require.NoError(t, err)
		require.False(t, available)
	})

	t.Run("invalid username is an error not unavailability", func(t *testing.T) {
		svc := NewProfileService(&stubProfileRepo{}, nil, nil)

		_, err := svc.CheckAvailability(context.Background(), "no spaces allowed")
		require.ErrorIs(t, err, ErrInvalidUsername)
	})
}

func TestProfileServiceView(t *testing.T) {
	owner := uuid.New()
	viewer := uuid.New()
	profile := fullProfile(owner)

	t.Run("anonymous visitor gets the stranger view", func(t *testing.T) {
		profiles := &stubProfileRepo{
			getProfileByUsername: func(ctx context.Context, username string) (*Profile, error) {
				return profile, nil
			},
		}
		svc := NewProfileService(profiles, &stubConnectionRepo{}, &stubRequestRepo{})

		vp, err := svc.View(context.Background(), "alice", nil)
		require.NoError(t, err)
		require.Empty(t, vp.Fields)
		require.False(t, vp.Connected)
	})

	t.Run("connected viewer gets their granted tier", func(t *testing.T) {
		profiles := &stubProfileRepo{
			getProfileByUsername: func(ctx context.Context, username string) (*Profile, error) {
				return profile, nil
			},
		}
		connections := &stubConnectionRepo{
			getConnection: func(ctx context.Context, ownerID, friendID uuid.UUID) (*Connection, error) {
				require.Equal(t, owner, ownerID)
				require.Equal(t, viewer, friendID)
				return connAt(ownerID, friendID, LevelTrusted), nil
			},
		}
		svc := NewProfileService(profiles, connections, &stubRequestRepo{})

		vp, err := svc.View(context.Background(), "alice", &viewer)
		require.NoError(t, err)
		require.True(t, vp.Connected)
		require.Contains(t, vp.Fields, "email")
		require.NotContains(t, vp.Fields, "phone")
	})

	t.Run("unconnected viewer with a pending request sees the hint", func(t *testing.T) {
		profiles := &stubProfileRepo{
			getProfileByUsername: func(ctx context.Context, username string) (*Profile, error) {
				return profile, nil
			},
		}
		connections := &stubConnectionRepo{
			getConnection: func(ctx context.Context, ownerID, friendID uuid.UUID) (*Connection, error) {
				return nil, ErrConnectionNotFound
			},
		}
		requests := &stubRequestRepo{
			getFriendRequestByPair: func(ctx context.Context, senderID, receiverID uuid.UUID) (*FriendRequest, error) {
				require.Equal(t, viewer, senderID)
				require.Equal(t, owner, receiverID)
				return &FriendRequest{SenderID: senderID, ReceiverID: receiverID, Status: RequestPending}, nil
			},
		}
		svc := NewProfileService(profiles, connections, requests)

		vp, err := svc.View(context.Background(), "alice", &viewer)
		require.NoError(t, err)
		require.True(t, vp.RequestPending)
		require.Empty(t, vp.Fields)
	})

	t.Run("owner viewing their own card skips the connection lookup", func(t *testing.T) {
		profiles := &stubProfileRepo{
			getProfileByUsername: func(ctx context.Context, username string) (*Profile, error) {
				return profile, nil
			},
		}
		svc := NewProfileService(profiles, &stubConnectionRepo{}, &stubRequestRepo{})

		vp, err := svc.View(context.Background(), "alice", &owner)
		require.NoError(t, err)
		require.True(t, vp.IsOwner)
		require.Len(t, vp.Fields, 10)
	})

	t.Run("unclaimed username surfaces not found", func(t *testing.T) {
		profiles := &stubProfileRepo{
			getProfileByUsername: func(ctx context.Context, username string) (*Profile, error) {
				return nil, ErrProfileNotFound
			},
		}
		svc := NewProfileService(profiles, &stubConnectionRepo{}, &stubRequestRepo{})

		_, err := svc.View(context.Background(), "nobody", nil)
		require.ErrorIs(t, err, ErrProfileNotFound)
	})
}
