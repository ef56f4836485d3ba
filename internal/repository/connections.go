package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Duke242/mycontacts/internal/domain"
)

// GetConnection retrieves the grant from ownerID to friendID. The
// relation is directional, so the argument order matters.
func (r *PostgresRepository) GetConnection(ctx context.Context, ownerID, friendID uuid.UUID) (*domain.Connection, error) {
	query := `
		SELECT id, user_id, friend_id, permission_level, created_at, updated_at
		FROM connections WHERE user_id = $1 AND friend_id = $2
	`
	return scanConnection(r.db.QueryRow(ctx, query, ownerID, friendID))
}

// GetConnectionByID retrieves a connection by ID.
func (r *PostgresRepository) GetConnectionByID(ctx context.Context, id uuid.UUID) (*domain.Connection, error) {
	query := `
		SELECT id, user_id, friend_id, permission_level, created_at, updated_at
		FROM connections WHERE id = $1
	`
	return scanConnection(r.db.QueryRow(ctx, query, id))
}

// ListConnections returns all grants made by the owner, joined with
// each friend's account email.
func (r *PostgresRepository) ListConnections(ctx context.Context, ownerID uuid.UUID) ([]*domain.ConnectionWithFriend, error) {
	query := `
		SELECT c.id, c.user_id, c.friend_id, c.permission_level, c.created_at, c.updated_at, a.email
		FROM connections c
		JOIN accounts a ON a.id = c.friend_id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var connections []*domain.ConnectionWithFriend
	for rows.Next() {
		var conn domain.ConnectionWithFriend
		err := rows.Scan(
			&conn.ID,
			&conn.UserID,
			&conn.FriendID,
			&conn.Level,
			&conn.CreatedAt,
			&conn.UpdatedAt,
			&conn.FriendEmail,
		)
		if err != nil {
			return nil, err
		}
		connections = append(connections, &conn)
	}
	return connections, rows.Err()
}

// UpdateConnectionLevel changes a grant's permission level.
func (r *PostgresRepository) UpdateConnectionLevel(ctx context.Context, id uuid.UUID, level domain.PermissionLevel) (*domain.Connection, error) {
	query := `
		UPDATE connections SET permission_level = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, friend_id, permission_level, created_at, updated_at
	`
	return scanConnection(r.db.QueryRow(ctx, query, id, int(level)))
}

// DeleteConnection removes a grant and clears the accepted request that
// created it, so the pair returns to having no relation and the friend
// may send a fresh request later.
func (r *PostgresRepository) DeleteConnection(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var ownerID, friendID uuid.UUID
	err = tx.QueryRow(ctx, `
		DELETE FROM connections WHERE id = $1
		RETURNING user_id, friend_id
	`, id).Scan(&ownerID, &friendID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrConnectionNotFound
		}
		return err
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM friend_requests
		WHERE sender_id = $1 AND receiver_id = $2 AND status = 'accepted'
	`, friendID, ownerID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanConnection(row pgx.Row) (*domain.Connection, error) {
	var conn domain.Connection
	err := row.Scan(
		&conn.ID,
		&conn.UserID,
		&conn.FriendID,
		&conn.Level,
		&conn.CreatedAt,
		&conn.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, err
	}
	return &conn, nil
}
