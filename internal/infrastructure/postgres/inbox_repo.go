package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oral0005/backend-posylka/internal/domain/inbox"
)

type InboxRepository struct {
	pool *pgxpool.Pool
}

func NewInboxRepository(pool *pgxpool.Pool) *InboxRepository {
	return &InboxRepository{pool: pool}
}

// SaveIfNotExists returns true if the event was saved (is new), false if
// the consumer already processed it. Runs inside the caller's tx so the
// dedup record commits together with the side effect.
func (r *InboxRepository) SaveIfNotExists(ctx context.Context, tx pgx.Tx, e *inbox.Event) (bool, error) {
	const sql = `
		INSERT INTO inbox_events (consumer, event_id, event_type, correlation_id, processed_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (consumer, event_id) DO NOTHING
	`

	tag, err := tx.Exec(ctx, sql, e.Consumer, e.EventID, e.EventType, nullIfEmpty(e.CorrelationID))
	if err != nil {
		return false, fmt.Errorf("insert inbox event: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
