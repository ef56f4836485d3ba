package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// Account is an authenticated identity. The rest of the system treats
// its ID as an opaque capability and never looks inside.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateAccountParams holds parameters for account creation.
type CreateAccountParams struct {
	Email        string
	PasswordHash string
	Name         string
}

// CreateRefreshTokenParams holds parameters for storing a refresh token.
type CreateRefreshTokenParams struct {
	AccountID uuid.UUID
	TokenHash string
	ExpiresAt time.Time
}

// StoredRefreshToken is a hashed refresh token at rest.
type StoredRefreshToken struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// AccountRepository defines data access for accounts and refresh
// tokens. Email uniqueness is enforced by the store; implementations
// translate the violation to ErrAccountExists.
type AccountRepository interface {
	CreateAccount(ctx context.Context, params CreateAccountParams) (*Account, error)
	GetAccountByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, string, error)
	AccountExistsByEmail(ctx context.Context, email string) (bool, error)

	CreateRefreshToken(ctx context.Context, params CreateRefreshTokenParams) (*StoredRefreshToken, error)
	GetRefreshTokenByHash(ctx context.Context, hash string) (*StoredRefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id uuid.UUID) error
	RevokeRefreshTokenByHash(ctx context.Context, hash string) error
	RevokeAccountRefreshTokens(ctx context.Context, accountID uuid.UUID) error
	DeleteExpiredRefreshTokens(ctx context.Context) error
}
