package notification

import (
	"context"
	"time"

	"github.com/oral0005/backend-posylka/internal/domain/post"
)

type Type string

const (
	TypeActivationRequest Type = "activation_request"
	TypeAccepted          Type = "accepted"
	TypeRejected          Type = "rejected"
	TypeDeliveryMarked    Type = "delivery_marked"
	TypeCompleted         Type = "completed"
)

// Notification is an append-only record directed at a user. Only the
// read flag is ever mutated after creation.
type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient_id"`
	ActorID     string    `json:"actor_id"`
	PostID      string    `json:"post_id"`
	PostKind    post.Kind `json:"post_kind"`
	Type        Type      `json:"type"`
	Message     string    `json:"message"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]*Notification, error)
	MarkRead(ctx context.Context, id string) error
	// MarkRequestRead marks the unread activation-request notifications a
	// given requester produced on a post, so a decided request never
	// lingers as an actionable item in the owner's feed.
	MarkRequestRead(ctx context.Context, postID, actorID string) error
}
