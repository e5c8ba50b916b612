package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oral0005/backend-posylka/internal/apperr"
	"github.com/oral0005/backend-posylka/internal/domain/notification"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	const sql = `
		INSERT INTO notifications (
			id, recipient_id, actor_id, post_id, post_kind, type, message,
			read, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := executorFrom(ctx, r.pool).Exec(ctx, sql,
		n.ID, n.RecipientID, n.ActorID, n.PostID, n.PostKind, n.Type, n.Message,
		n.Read, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	return nil
}

const notificationColumns = `
	id, recipient_id, actor_id, post_id, post_kind, type, message, read, created_at
`

func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*notification.Notification, error) {
	sql := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	var n notification.Notification
	err := executorFrom(ctx, r.pool).QueryRow(ctx, sql, id).Scan(
		&n.ID, &n.RecipientID, &n.ActorID, &n.PostID, &n.PostKind, &n.Type,
		&n.Message, &n.Read, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: notification %s", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get notification by id: %w", err)
	}

	return &n, nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]*notification.Notification, error) {
	sql := `SELECT ` + notificationColumns + `
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC`

	rows, err := executorFrom(ctx, r.pool).Query(ctx, sql, recipientID)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		n := &notification.Notification{}
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.ActorID, &n.PostID, &n.PostKind, &n.Type,
			&n.Message, &n.Read, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (r *NotificationRepository) MarkRequestRead(ctx context.Context, postID, actorID string) error {
	const sql = `
		UPDATE notifications
		SET read = TRUE
		WHERE post_id = $1 AND actor_id = $2 AND type = 'activation_request' AND read = FALSE
	`

	if _, err := executorFrom(ctx, r.pool).Exec(ctx, sql, postID, actorID); err != nil {
		return fmt.Errorf("mark request notifications read: %w", err)
	}

	return nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	tag, err := executorFrom(ctx, r.pool).Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: notification %s", apperr.ErrNotFound, id)
	}

	return nil
}
