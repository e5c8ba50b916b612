package request

import (
	"context"
	"time"

	"github.com/oral0005/backend-posylka/internal/domain/post"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// ActivationRequest is a counterparty's bid to be assigned to an open
// post. It carries its own identity and status, so accept/reject address
// a concrete request instead of guessing from notification recency.
type ActivationRequest struct {
	ID          string    `json:"id"`
	PostID      string    `json:"post_id"`
	PostKind    post.Kind `json:"post_kind"`
	RequesterID string    `json:"requester_id"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, r *ActivationRequest) error
	GetByID(ctx context.Context, id string) (*ActivationRequest, error)
	ListPendingByPost(ctx context.Context, postID string) ([]*ActivationRequest, error)
	SetStatus(ctx context.Context, id string, status Status) error
	// RejectOtherPending rejects every pending request on the post except
	// the accepted one, returning the rejected requests for notification
	// fan-out.
	RejectOtherPending(ctx context.Context, postID, acceptedID string) ([]*ActivationRequest, error)
}
