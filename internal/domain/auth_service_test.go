package domain

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Duke242/mycontacts/internal/auth"
)

// memoryAccountRepo is a minimal in-memory AccountRepository for
// exercising the full token lifecycle.
type memoryAccountRepo struct {
	accounts  map[uuid.UUID]*Account
	passwords map[uuid.UUID]string
	tokens    map[string]*StoredRefreshToken
}

func newMemoryAccountRepo() *memoryAccountRepo {
	return &memoryAccountRepo{
		accounts:  make(map[uuid.UUID]*Account),
		passwords: make(map[uuid.UUID]string),
		tokens:    make(map[string]*StoredRefreshToken),
	}
}

func (m *memoryAccountRepo) CreateAccount(ctx context.Context, params CreateAccountParams) (*Account, error) {
	for _, a := range m.accounts {
		if a.Email == params.Email {
			return nil, ErrAccountExists
		}
	}
	a := &Account{ID: uuid.New(), Email: params.Email, Name: params.Name, CreatedAt: time.Now()}
	m.accounts[a.ID] = a
	m.passwords[a.ID] = params.PasswordHash
	return a, nil
}

func (m *memoryAccountRepo) GetAccountByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a, nil
}

func (m *memoryAccountRepo) GetAccountByEmail(ctx context.Context, email string) (*Account, string, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return a, m.passwords[a.ID], nil
		}
	}
	return nil, "", ErrAccountNotFound
}

func (m *memoryAccountRepo) AccountExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryAccountRepo) CreateRefreshToken(ctx context.Context, params CreateRefreshTokenParams) (*StoredRefreshToken, error) {
	t := &StoredRefreshToken{ID: uuid.New(), AccountID: params.AccountID, TokenHash: params.TokenHash, ExpiresAt: params.ExpiresAt}
	m.tokens[params.TokenHash] = t
	return t, nil
}

func (m *memoryAccountRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (*StoredRefreshToken, error) {
	t, ok := m.tokens[hash]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return t, nil
}

func (m *memoryAccountRepo) RevokeRefreshToken(ctx context.Context, id uuid.UUID) error {
	for _, t := range m.tokens {
		if t.ID == id {
			t.Revoked = true
		}
	}
	return nil
}

func (m *memoryAccountRepo) RevokeRefreshTokenByHash(ctx context.Context, hash string) error {
	if t, ok := m.tokens[hash]; ok {
		t.Revoked = true
	}
	return nil
}

func (m *memoryAccountRepo) RevokeAccountRefreshTokens(ctx context.Context, accountID uuid.UUID) error {
	for _, t := range m.tokens {
		if t.AccountID == accountID {
			t.Revoked = true
		}
	}
	return nil
}

func (m *memoryAccountRepo) DeleteExpiredRefreshTokens(ctx context.Context) error { return nil }

func newAuthService() (*AuthService, *memoryAccountRepo) {
	repo := newMemoryAccountRepo()
	jwt := auth.NewJWTManager("test-secret", 15*time.Minute, time.Hour)
	return NewAuthService(repo, jwt), repo
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	result, err := svc.Register(ctx, "alice@example.com", "Sup3rSecret", "Alice")
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)

	_, err = svc.Register(ctx, "alice@example.com", "Sup3rSecret", "Alice Again")
	require.ErrorIs(t, err, ErrAccountExists)

	login, err := svc.Login(ctx, "alice@example.com", "Sup3rSecret")
	require.NoError(t, err)
	require.Equal(t, result.Account.ID, login.Account.ID)

	_, err = svc.Login(ctx, "alice@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "Sup3rSecret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceRefreshRotation(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice@example.com", "Sup3rSecret", "Alice")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, registered.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)

	// The presented token was rotated out and cannot be replayed.
	_, err = svc.Refresh(ctx, registered.RefreshToken)
	require.ErrorIs(t, err, ErrTokenRevoked)

	// The fresh one still works.
	_, err = svc.Refresh(ctx, refreshed.RefreshToken)
	require.NoError(t, err)
}

func TestAuthServiceLogout(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice@example.com", "Sup3rSecret", "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, registered.RefreshToken))

	_, err = svc.Refresh(ctx, registered.RefreshToken)
	require.ErrorIs(t, err, ErrTokenRevoked)

	// Logging out twice is not an error.
	require.NoError(t, svc.Logout(ctx, registered.RefreshToken))
}
