package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Duke242/mycontacts/internal/domain"
)

const profileColumns = `
	id, creator_id, username, first_name, last_name, address,
	facebook, twitter, instagram, bio, email, phone, dob,
	created_at, updated_at
`

// CreateProfile inserts the one-time profile claim. The unique indexes
// on username and creator_id back the claim under concurrency; their
// violations are told apart by constraint name.
func (r *PostgresRepository) CreateProfile(ctx context.Context, params domain.CreateProfileParams) (*domain.Profile, error) {
	query := `
		INSERT INTO user_profiles (
			creator_id, username, first_name, last_name, address,
			facebook, twitter, instagram, bio, email, phone, dob
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + profileColumns

	f := params.Fields
	row := r.db.QueryRow(ctx, query,
		params.CreatorID,
		params.Username,
		f.FirstName,
		f.LastName,
		f.Address,
		f.Facebook,
		f.Twitter,
		f.Instagram,
		f.Bio,
		f.Email,
		f.Phone,
		f.DOB,
	)

	profile, err := scanProfile(row)
	if err != nil {
		if isUniqueViolation(err, "user_profiles_username_key") {
			return nil, domain.ErrUsernameTaken
		}
		if isUniqueViolation(err, "user_profiles_creator_id_key") {
			return nil, domain.ErrProfileExists
		}
		return nil, err
	}
	return profile, nil
}

// GetProfileByUsername retrieves a profile by username.
func (r *PostgresRepository) GetProfileByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE username = $1`
	return scanProfile(r.db.QueryRow(ctx, query, username))
}

// GetProfileByCreator retrieves an account's profile.
func (r *PostgresRepository) GetProfileByCreator(ctx context.Context, creatorID uuid.UUID) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE creator_id = $1`
	return scanProfile(r.db.QueryRow(ctx, query, creatorID))
}

// UpdateProfile replaces the mutable fields of an account's profile.
// The username column is deliberately absent: it never changes.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, creatorID uuid.UUID, fields domain.ProfileFields) (*domain.Profile, error) {
	query := `
		UPDATE user_profiles SET
			first_name = $2, last_name = $3, address = $4,
			facebook = $5, twitter = $6, instagram = $7,
			bio = $8, email = $9, phone = $10, dob = $11,
			updated_at = NOW()
		WHERE creator_id = $1
		RETURNING ` + profileColumns

	row := r.db.QueryRow(ctx, query,
		creatorID,
		fields.FirstName,
		fields.LastName,
		fields.Address,
		fields.Facebook,
		fields.Twitter,
		fields.Instagram,
		fields.Bio,
		fields.Email,
		fields.Phone,
		fields.DOB,
	)
	return scanProfile(row)
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID,
		&p.CreatorID,
		&p.Username,
		&p.FirstName,
		&p.LastName,
		&p.Address,
		&p.Facebook,
		&p.Twitter,
		&p.Instagram,
		&p.Bio,
		&p.Email,
		&p.Phone,
		&p.DOB,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}
