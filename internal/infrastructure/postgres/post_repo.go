package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oral0005/backend-posylka/internal/apperr"
	"github.com/oral0005/backend-posylka/internal/domain/post"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

const postColumns = `
	id, kind, user_id,
	COALESCE(counterparty_id::text, ''),
	from_city, to_city, scheduled_at, price,
	COALESCE(description, ''),
	status, delivered, confirmed, owner_rated, counterparty_rated,
	created_at, updated_at
`

func scanPost(row pgx.Row) (*post.Post, error) {
	var p post.Post
	err := row.Scan(
		&p.ID, &p.Kind, &p.UserID,
		&p.CounterpartyID,
		&p.FromCity, &p.ToCity, &p.ScheduledAt, &p.Price,
		&p.Description,
		&p.Status, &p.Delivered, &p.Confirmed, &p.OwnerRated, &p.CounterpartyRated,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Create(ctx context.Context, p *post.Post) error {
	const sql = `
		INSERT INTO posts (
			id, kind, user_id, from_city, to_city, scheduled_at, price,
			description, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11)
	`

	_, err := executorFrom(ctx, r.pool).Exec(ctx, sql,
		p.ID, p.Kind, p.UserID, p.FromCity, p.ToCity, p.ScheduledAt, p.Price,
		p.Description, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*post.Post, error) {
	sql := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	p, err := scanPost(executorFrom(ctx, r.pool).QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: post %s", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get post by id: %w", err)
	}

	return p, nil
}

// List returns posts of the given kind, newest first. An empty kind
// returns every post.
func (r *PostRepository) List(ctx context.Context, kind post.Kind) ([]*post.Post, error) {
	sql := `SELECT ` + postColumns + ` FROM posts`
	args := []any{}
	if kind != "" {
		sql += ` WHERE kind = $1`
		args = append(args, kind)
	}
	sql += ` ORDER BY created_at DESC`

	return r.queryPosts(ctx, sql, args...)
}

func (r *PostRepository) ListByOwner(ctx context.Context, userID string) ([]*post.Post, error) {
	sql := `SELECT ` + postColumns + ` FROM posts WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryPosts(ctx, sql, userID)
}

func (r *PostRepository) queryPosts(ctx context.Context, sql string, args ...any) ([]*post.Post, error) {
	rows, err := executorFrom(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []*post.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

func (r *PostRepository) Update(ctx context.Context, p *post.Post) error {
	const sql = `
		UPDATE posts
		SET from_city = $2, to_city = $3, scheduled_at = $4, price = $5,
		    description = NULLIF($6, ''), updated_at = NOW()
		WHERE id = $1
	`

	tag, err := executorFrom(ctx, r.pool).Exec(ctx, sql,
		p.ID, p.FromCity, p.ToCity, p.ScheduledAt, p.Price, p.Description)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: post %s", apperr.ErrNotFound, p.ID)
	}

	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	tag, err := executorFrom(ctx, r.pool).Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: post %s", apperr.ErrNotFound, id)
	}

	return nil
}

// Activate is a conditional write: it only applies while the status is
// still open, so of two racing accepts exactly one wins and the loser
// surfaces a conflict instead of silently reassigning the counterparty.
func (r *PostRepository) Activate(ctx context.Context, id, counterpartyID string) error {
	const sql = `
		UPDATE posts
		SET status = 'active', counterparty_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'open'
	`

	tag, err := executorFrom(ctx, r.pool).Exec(ctx, sql, id, counterpartyID)
	if err != nil {
		return fmt.Errorf("activate post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: post %s is no longer open", apperr.ErrConflict, id)
	}

	return nil
}

func (r *PostRepository) Cancel(ctx context.Context, id string) error {
	const sql = `
		UPDATE posts
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'open'
	`

	tag, err := executorFrom(ctx, r.pool).Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("cancel post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: post %s is no longer open", apperr.ErrConflict, id)
	}

	return nil
}

func (r *PostRepository) SetDelivered(ctx context.Context, id string) error {
	const sql = `
		UPDATE posts
		SET delivered = TRUE, updated_at = NOW()
		WHERE id = $1 AND status = 'active' AND delivered = FALSE
	`

	tag, err := executorFrom(ctx, r.pool).Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("set delivered: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: post %s is not awaiting delivery", apperr.ErrConflict, id)
	}

	return nil
}

func (r *PostRepository) Complete(ctx context.Context, id string) error {
	const sql = `
		UPDATE posts
		SET confirmed = TRUE, status = 'completed', updated_at = NOW()
		WHERE id = $1 AND status = 'active' AND delivered = TRUE
	`

	tag, err := executorFrom(ctx, r.pool).Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("complete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: post %s is not awaiting confirmation", apperr.ErrConflict, id)
	}

	return nil
}

func (r *PostRepository) SetRated(ctx context.Context, id string, by post.Role) error {
	column := "owner_rated"
	if by == post.RoleCounterparty {
		column = "counterparty_rated"
	}

	sql := `
		UPDATE posts
		SET ` + column + ` = TRUE, updated_at = NOW()
		WHERE id = $1 AND status = 'completed' AND ` + column + ` = FALSE
	`

	tag, err := executorFrom(ctx, r.pool).Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("set rated: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: post %s already rated by %s", apperr.ErrConflict, id, by)
	}

	return nil
}
