package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUsernameTaken   = errors.New("username is already taken")
	ErrProfileExists   = errors.New("account already has a profile")
	ErrInvalidUsername = errors.New("invalid username")
)

// Profile is a user's business card. CreatorID ties it 1:1 to an
// account; Username is immutable after the claim.
type Profile struct {
	ID        uuid.UUID  `json:"id"`
	CreatorID uuid.UUID  `json:"creator_id"`
	Username  string     `json:"username"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Address   string     `json:"address"`
	Facebook  string     `json:"facebook"`
	Twitter   string     `json:"twitter"`
	Instagram string     `json:"instagram"`
	Bio       string     `json:"bio"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	DOB       *time.Time `json:"dob,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// FormatDOB renders the date of birth as YYYY-MM-DD, or "" when unset.
func (p *Profile) FormatDOB() string {
	if p.DOB == nil {
		return ""
	}
	return p.DOB.Format("2006-01-02")
}

// ProfileFields holds the mutable profile fields. Username is absent on
// purpose: it cannot change once claimed.
type ProfileFields struct {
	FirstName string
	LastName  string
	Address   string
	Facebook  string
	Twitter   string
	Instagram string
	Bio       string
	Email     string
	Phone     string
	DOB       *time.Time
}

// CreateProfileParams holds parameters for the one-time claim.
type CreateProfileParams struct {
	CreatorID uuid.UUID
	Username  string
	Fields    ProfileFields
}

// ProfileRepository defines the data access for profiles. Uniqueness of
// username and creator_id is enforced by the store; implementations
// translate those violations to ErrUsernameTaken and ErrProfileExists.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, params CreateProfileParams) (*Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*Profile, error)
	GetProfileByCreator(ctx context.Context, creatorID uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, creatorID uuid.UUID, fields ProfileFields) (*Profile, error)
}
