package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oral0005/backend-posylka/internal/apperr"
	"github.com/oral0005/backend-posylka/internal/domain/user"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	const sql = `
		INSERT INTO users (
			id, username, password_hash, phone_number, name, surname,
			verified, rating_avg, rating_count, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := executorFrom(ctx, r.pool).Exec(ctx, sql,
		u.ID, u.Username, u.PasswordHash, u.PhoneNumber, u.Name, u.Surname,
		u.Verified, u.RatingAvg, u.RatingCount, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: username or phone number already in use", apperr.ErrConflict)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

const userColumns = `
	id, username, password_hash, phone_number, name, surname,
	verified, rating_avg, rating_count, created_at
`

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (*user.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	var u user.User
	err := executorFrom(ctx, r.pool).QueryRow(ctx, sql, arg).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.PhoneNumber, &u.Name, &u.Surname,
		&u.Verified, &u.RatingAvg, &u.RatingCount, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user", apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.getBy(ctx, `id = $1`, id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.getBy(ctx, `username = $1`, username)
}

func (r *UserRepository) GetByPhone(ctx context.Context, phoneNumber string) (*user.User, error) {
	return r.getBy(ctx, `phone_number = $1`, phoneNumber)
}

func (r *UserRepository) SetVerified(ctx context.Context, id string) error {
	tag, err := executorFrom(ctx, r.pool).Exec(ctx,
		`UPDATE users SET verified = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("set verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", apperr.ErrNotFound, id)
	}

	return nil
}

// ApplyRating folds one rating into the running average inside a single
// UPDATE, reading avg and count from the row being written. Concurrent
// ratings of the same user serialize on the row lock, so no update is
// lost and the result equals the arithmetic mean regardless of order.
func (r *UserRepository) ApplyRating(ctx context.Context, id string, rating int) error {
	const sql = `
		UPDATE users
		SET rating_avg   = (rating_avg * rating_count + $2) / (rating_count + 1),
		    rating_count = rating_count + 1
		WHERE id = $1
	`

	tag, err := executorFrom(ctx, r.pool).Exec(ctx, sql, id, rating)
	if err != nil {
		return fmt.Errorf("apply rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", apperr.ErrNotFound, id)
	}

	return nil
}
