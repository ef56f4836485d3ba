package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Duke242/mycontacts/internal/domain"
)

// CreateFriendRequest inserts a pending request. The unique index on
// (sender_id, receiver_id) closes the check-then-insert race: a
// concurrent duplicate surfaces as ErrDuplicateRequest, same as the
// service-level check.
func (r *PostgresRepository) CreateFriendRequest(ctx context.Context, senderID, receiverID uuid.UUID) (*domain.FriendRequest, error) {
	query := `
		INSERT INTO friend_requests (sender_id, receiver_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING id, sender_id, receiver_id, status, created_at
	`
	req, err := scanFriendRequest(r.db.QueryRow(ctx, query, senderID, receiverID))
	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, domain.ErrDuplicateRequest
		}
		return nil, err
	}
	return req, nil
}

// GetFriendRequestByID retrieves a request by ID.
func (r *PostgresRepository) GetFriendRequestByID(ctx context.Context, id uuid.UUID) (*domain.FriendRequest, error) {
	query := `
		SELECT id, sender_id, receiver_id, status, created_at
		FROM friend_requests WHERE id = $1
	`
	return scanFriendRequest(r.db.QueryRow(ctx, query, id))
}

// GetFriendRequestByPair retrieves the request for the exact ordered
// (sender, receiver) pair, regardless of status.
func (r *PostgresRepository) GetFriendRequestByPair(ctx context.Context, senderID, receiverID uuid.UUID) (*domain.FriendRequest, error) {
	query := `
		SELECT id, sender_id, receiver_id, status, created_at
		FROM friend_requests WHERE sender_id = $1 AND receiver_id = $2
	`
	return scanFriendRequest(r.db.QueryRow(ctx, query, senderID, receiverID))
}

// ListIncomingRequests returns pending requests addressed to the
// receiver, newest first, with the sender's account email denormalized
// at read time.
func (r *PostgresRepository) ListIncomingRequests(ctx context.Context, receiverID uuid.UUID) ([]*domain.IncomingRequest, error) {
	query := `
		SELECT fr.id, fr.sender_id, fr.receiver_id, fr.status, fr.created_at, a.email
		FROM friend_requests fr
		JOIN accounts a ON a.id = fr.sender_id
		WHERE fr.receiver_id = $1 AND fr.status = 'pending'
		ORDER BY fr.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*domain.IncomingRequest
	for rows.Next() {
		var req domain.IncomingRequest
		err := rows.Scan(
			&req.ID,
			&req.SenderID,
			&req.ReceiverID,
			&req.Status,
			&req.CreatedAt,
			&req.SenderEmail,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}

// AcceptFriendRequest marks the request accepted and creates the
// level-k connection from receiver to sender in one transaction, so a
// failure on either write leaves both untouched.
func (r *PostgresRepository) AcceptFriendRequest(ctx context.Context, id uuid.UUID, level domain.PermissionLevel) (*domain.Connection, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var senderID, receiverID uuid.UUID
	err = tx.QueryRow(ctx, `
		UPDATE friend_requests SET status = 'accepted'
		WHERE id = $1 AND status = 'pending'
		RETURNING sender_id, receiver_id
	`, id).Scan(&senderID, &receiverID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}

	conn, err := scanConnection(tx.QueryRow(ctx, `
		INSERT INTO connections (user_id, friend_id, permission_level)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, friend_id, permission_level, created_at, updated_at
	`, receiverID, senderID, int(level)))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return conn, nil
}

// DeleteFriendRequest removes a request outright; rejection stores no
// terminal state.
func (r *PostgresRepository) DeleteFriendRequest(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM friend_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func scanFriendRequest(row pgx.Row) (*domain.FriendRequest, error) {
	var req domain.FriendRequest
	err := row.Scan(
		&req.ID,
		&req.SenderID,
		&req.ReceiverID,
		&req.Status,
		&req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}
