package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oral0005/backend-posylka/internal/apperr"
	"github.com/oral0005/backend-posylka/internal/domain/request"
)

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func (r *RequestRepository) Create(ctx context.Context, req *request.ActivationRequest) error {
	const sql = `
		INSERT INTO activation_requests (id, post_id, post_kind, requester_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := executorFrom(ctx, r.pool).Exec(ctx, sql,
		req.ID, req.PostID, req.PostKind, req.RequesterID, req.Status, req.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// Partial unique index: one pending request per user per post.
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: you already have a pending request on this post", apperr.ErrConflict)
		}
		return fmt.Errorf("insert activation request: %w", err)
	}

	return nil
}

const requestColumns = `id, post_id, post_kind, requester_id, status, created_at`

func (r *RequestRepository) GetByID(ctx context.Context, id string) (*request.ActivationRequest, error) {
	sql := `SELECT ` + requestColumns + ` FROM activation_requests WHERE id = $1`

	var req request.ActivationRequest
	err := executorFrom(ctx, r.pool).QueryRow(ctx, sql, id).Scan(
		&req.ID, &req.PostID, &req.PostKind, &req.RequesterID, &req.Status, &req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: activation request %s", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get activation request: %w", err)
	}

	return &req, nil
}

func (r *RequestRepository) ListPendingByPost(ctx context.Context, postID string) ([]*request.ActivationRequest, error) {
	sql := `SELECT ` + requestColumns + `
		FROM activation_requests
		WHERE post_id = $1 AND status = 'pending'
		ORDER BY created_at DESC`

	return r.queryRequests(ctx, sql, postID)
}

// SetStatus is conditional on the request still being pending, so a
// request is decided at most once.
func (r *RequestRepository) SetStatus(ctx context.Context, id string, status request.Status) error {
	const sql = `
		UPDATE activation_requests
		SET status = $2
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := executorFrom(ctx, r.pool).Exec(ctx, sql, id, status)
	if err != nil {
		return fmt.Errorf("set request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: activation request %s already decided", apperr.ErrConflict, id)
	}

	return nil
}

func (r *RequestRepository) RejectOtherPending(ctx context.Context, postID, acceptedID string) ([]*request.ActivationRequest, error) {
	sql := `
		UPDATE activation_requests
		SET status = 'rejected'
		WHERE post_id = $1 AND id <> $2 AND status = 'pending'
		RETURNING ` + requestColumns

	return r.queryRequests(ctx, sql, postID, acceptedID)
}

func (r *RequestRepository) queryRequests(ctx context.Context, sql string, args ...any) ([]*request.ActivationRequest, error) {
	rows, err := executorFrom(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query activation requests: %w", err)
	}
	defer rows.Close()

	var requests []*request.ActivationRequest
	for rows.Next() {
		req := &request.ActivationRequest{}
		if err := rows.Scan(
			&req.ID, &req.PostID, &req.PostKind, &req.RequesterID, &req.Status, &req.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan activation request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}
