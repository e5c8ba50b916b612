package outbox

import (
	"context"
	"time"
)

// Event is a transactional-outbox record. Lifecycle use cases insert it
// in the same transaction as the post and notification writes; the relay
// publishes it to Kafka afterwards, so a crash between commit and
// publish loses nothing.
type Event struct {
	ID            string    `json:"id"`
	EventType     string    `json:"event_type"`
	Payload       []byte    `json:"payload"`
	Status        string    `json:"status"`
	CorrelationID string    `json:"correlation_id"`
	CausationID   string    `json:"causation_id"`
	Producer      string    `json:"producer"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EventNotificationCreated carries a notification record to the
// out-of-band dispatcher. CorrelationID is the post id.
const EventNotificationCreated = "NotificationCreated"

type Repository interface {
	Create(ctx context.Context, event *Event) error
	FetchBatch(ctx context.Context, limit int) ([]*Event, error)
	MarkProcessed(ctx context.Context, ids []string) error
	MarkFailed(ctx context.Context, ids []string) error
}
