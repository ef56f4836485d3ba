package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Duke242/mycontacts/internal/auth"
)

// AuthService handles registration, login and token rotation. It is the
// session collaborator: everything downstream consumes only the account
// ID carried in the access token.
type AuthService struct {
	repo AccountRepository
	jwt  *auth.JWTManager
}

// NewAuthService creates a new auth service.
func NewAuthService(repo AccountRepository, jwt *auth.JWTManager) *AuthService {
	return &AuthService{repo: repo, jwt: jwt}
}

// AuthResult is returned from register, login and refresh.
type AuthResult struct {
	Account      *Account `json:"account"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
}

// Register creates a new account with email and password.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	exists, err := s.repo.AccountExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAccountExists
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.CreateAccount(ctx, CreateAccountParams{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
	})
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, account)
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	account, passwordHash, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.VerifyPassword(password, passwordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, account)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.GetRefreshTokenByHash(ctx, auth.HashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if stored.Revoked {
		return nil, ErrTokenRevoked
	}

	account, err := s.repo.GetAccountByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RevokeRefreshToken(ctx, stored.ID); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, account)
}

// Logout revokes the presented refresh token. Revoking an unknown or
// already revoked token is not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.repo.RevokeRefreshTokenByHash(ctx, auth.HashToken(refreshToken))
}

// GetAccountByID returns an account by ID.
func (s *AuthService) GetAccountByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccountByID(ctx, id)
}

func (s *AuthService) issueTokens(ctx context.Context, account *Account) (*AuthResult, error) {
	pair, err := s.jwt.GenerateTokenPair(account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	_, err = s.repo.CreateRefreshToken(ctx, CreateRefreshTokenParams{
		AccountID: account.ID,
		TokenHash: auth.HashToken(pair.RefreshToken),
		ExpiresAt: pair.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Account:      account,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
