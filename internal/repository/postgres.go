package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Duke242/mycontacts/internal/domain"
)

// uniqueViolation is the Postgres error code for a unique constraint
// violation. The unique indexes, not the service-level existence
// checks, are what actually guarantee uniqueness under concurrency.
const uniqueViolation = "23505"

// PostgresRepository implements every domain repository interface over
// a single pgx pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// CreateAccount creates a new account.
func (r *PostgresRepository) CreateAccount(ctx context.Context, params domain.CreateAccountParams) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING id, email, name, created_at, updated_at
	`
	row := r.db.QueryRow(ctx, query, params.Email, params.PasswordHash, params.Name)

	account, err := scanAccount(row)
	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, domain.ErrAccountExists
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByID retrieves an account by ID.
func (r *PostgresRepository) GetAccountByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, email, name, created_at, updated_at
		FROM accounts WHERE id = $1
	`
	return scanAccount(r.db.QueryRow(ctx, query, id))
}

// GetAccountByEmail retrieves an account and its password hash.
func (r *PostgresRepository) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, string, error) {
	query := `
		SELECT id, email, name, created_at, updated_at, password_hash
		FROM accounts WHERE email = $1
	`
	var account domain.Account
	var passwordHash string
	err := r.db.QueryRow(ctx, query, email).Scan(
		&account.ID,
		&account.Email,
		&account.Name,
		&account.CreatedAt,
		&account.UpdatedAt,
		&passwordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", domain.ErrAccountNotFound
		}
		return nil, "", err
	}
	return &account, passwordHash, nil
}

// AccountExistsByEmail checks if an account exists by email.
func (r *PostgresRepository) AccountExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

// CreateRefreshToken stores a hashed refresh token.
func (r *PostgresRepository) CreateRefreshToken(ctx context.Context, params domain.CreateRefreshTokenParams) (*domain.StoredRefreshToken, error) {
	query := `
		INSERT INTO refresh_tokens (account_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, account_id, token_hash, expires_at, revoked, created_at
	`
	return scanRefreshToken(r.db.QueryRow(ctx, query, params.AccountID, params.TokenHash, params.ExpiresAt))
}

// GetRefreshTokenByHash retrieves an unexpired refresh token by hash.
func (r *PostgresRepository) GetRefreshTokenByHash(ctx context.Context, hash string) (*domain.StoredRefreshToken, error) {
	query := `
		SELECT id, account_id, token_hash, expires_at, revoked, created_at
		FROM refresh_tokens
		WHERE token_hash = $1 AND expires_at > NOW()
	`
	token, err := scanRefreshToken(r.db.QueryRow(ctx, query, hash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTokenRevoked
		}
		return nil, err
	}
	return token, nil
}

// RevokeRefreshToken revokes a refresh token by ID.
func (r *PostgresRepository) RevokeRefreshToken(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE refresh_tokens SET revoked = TRUE, revoked_at = NOW() WHERE id = $1`, id)
	return err
}

// RevokeRefreshTokenByHash revokes a refresh token by hash.
func (r *PostgresRepository) RevokeRefreshTokenByHash(ctx context.Context, hash string) error {
	_, err := r.db.Exec(ctx, `UPDATE refresh_tokens SET revoked = TRUE, revoked_at = NOW() WHERE token_hash = $1`, hash)
	return err
}

// RevokeAccountRefreshTokens revokes all refresh tokens for an account.
func (r *PostgresRepository) RevokeAccountRefreshTokens(ctx context.Context, accountID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE refresh_tokens SET revoked = TRUE, revoked_at = NOW() WHERE account_id = $1`, accountID)
	return err
}

// DeleteExpiredRefreshTokens removes expired and long-revoked tokens.
func (r *PostgresRepository) DeleteExpiredRefreshTokens(ctx context.Context) error {
	query := `
		DELETE FROM refresh_tokens
		WHERE expires_at < NOW()
		   OR (revoked = TRUE AND revoked_at < NOW() - INTERVAL '7 days')
	`
	_, err := r.db.Exec(ctx, query)
	return err
}

// StartCleanupWorker periodically deletes expired refresh tokens until
// the context is cancelled.
func (r *PostgresRepository) StartCleanupWorker(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = r.DeleteExpiredRefreshTokens(ctx)
			}
		}
	}()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.Name,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func scanRefreshToken(row pgx.Row) (*domain.StoredRefreshToken, error) {
	var token domain.StoredRefreshToken
	err := row.Scan(
		&token.ID,
		&token.AccountID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.Revoked,
		&token.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &token, nil
}
