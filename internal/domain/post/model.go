package post

import (
	"context"
	"fmt"
	"time"

	"github.com/oral0005/backend-posylka/internal/apperr"
)

// Kind selects which side of the marketplace a post belongs to. A sender
// post offers a parcel and waits for a courier; a courier post offers a
// trip and waits for a sender. Both share the same lifecycle.
type Kind string

const (
	KindSender  Kind = "sender"
	KindCourier Kind = "courier"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSender, KindCourier:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: unknown post kind %q", apperr.ErrValidation, s)
}

// Role is a party's position relative to a post.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleCounterparty Role = "counterparty"
)

// Deliverer is the role that physically carries the parcel: the owner of
// a courier post, the assigned courier (counterparty) of a sender post.
func (k Kind) Deliverer() Role {
	if k == KindCourier {
		return RoleOwner
	}
	return RoleCounterparty
}

type Status string

const (
	StatusOpen      Status = "open"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Post struct {
	ID                string    `json:"id"`
	Kind              Kind      `json:"kind"`
	UserID            string    `json:"user_id"`
	CounterpartyID    string    `json:"counterparty_id,omitempty"`
	FromCity          string    `json:"from_city"`
	ToCity            string    `json:"to_city"`
	ScheduledAt       time.Time `json:"scheduled_at"`
	Price             float64   `json:"price"`
	Description       string    `json:"description,omitempty"`
	Status            Status    `json:"status"`
	Delivered         bool      `json:"delivered"`
	Confirmed         bool      `json:"confirmed"`
	OwnerRated        bool      `json:"owner_rated"`
	CounterpartyRated bool      `json:"counterparty_rated"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RoleOf reports the caller's role on the post. The second return is
// false for users that are neither owner nor assigned counterparty.
func (p *Post) RoleOf(userID string) (Role, bool) {
	switch userID {
	case p.UserID:
		return RoleOwner, true
	case p.CounterpartyID:
		if p.CounterpartyID != "" {
			return RoleCounterparty, true
		}
	}
	return "", false
}

// Other returns the opposite role.
func Other(r Role) Role {
	if r == RoleOwner {
		return RoleCounterparty
	}
	return RoleOwner
}

// UserInRole resolves a role to the concrete user id on this post.
func (p *Post) UserInRole(r Role) string {
	if r == RoleOwner {
		return p.UserID
	}
	return p.CounterpartyID
}

// Every guard below follows the same order: existence is the caller's
// concern (a nil post never reaches here), then role, then status.
// Violations short-circuit before any mutation.

// CanModify guards Update, Delete and Cancel: owner only, and only while
// the post has not progressed past open.
func (p *Post) CanModify(userID string) error {
	if p.UserID != userID {
		return fmt.Errorf("%w: only the post owner may modify it", apperr.ErrUnauthorized)
	}
	if p.Status != StatusOpen {
		return fmt.Errorf("%w: post is %s, only open posts can be modified", apperr.ErrInvalidState, p.Status)
	}
	return nil
}

// CanRequestActivation guards a prospective counterparty's bid.
func (p *Post) CanRequestActivation(userID string) error {
	if p.UserID == userID {
		return fmt.Errorf("%w: cannot request activation of your own post", apperr.ErrUnauthorized)
	}
	if p.Status != StatusOpen {
		return fmt.Errorf("%w: post is %s, activation can only be requested while open", apperr.ErrInvalidState, p.Status)
	}
	return nil
}

// CanDecideRequest guards Accept and Reject, which share a precondition.
func (p *Post) CanDecideRequest(userID string) error {
	if p.UserID != userID {
		return fmt.Errorf("%w: only the post owner may accept or reject requests", apperr.ErrUnauthorized)
	}
	if p.Status != StatusOpen {
		return fmt.Errorf("%w: post is %s, requests can only be decided while open", apperr.ErrInvalidState, p.Status)
	}
	return nil
}

// CanMarkDelivered guards the deliverer-side completion flag.
func (p *Post) CanMarkDelivered(userID string) error {
	role, ok := p.RoleOf(userID)
	if !ok || role != p.Kind.Deliverer() {
		return fmt.Errorf("%w: only the delivering party may mark delivery", apperr.ErrUnauthorized)
	}
	if p.Status != StatusActive {
		return fmt.Errorf("%w: post is %s, delivery can only be marked while active", apperr.ErrInvalidState, p.Status)
	}
	if p.Delivered {
		return fmt.Errorf("%w: delivery already marked", apperr.ErrInvalidState)
	}
	return nil
}

// CanConfirm guards the counterpart's confirmation, which finalizes the
// post. Confirmation never precedes delivery marking.
func (p *Post) CanConfirm(userID string) error {
	role, ok := p.RoleOf(userID)
	if !ok || role == p.Kind.Deliverer() {
		return fmt.Errorf("%w: only the receiving party may confirm completion", apperr.ErrUnauthorized)
	}
	if p.Status != StatusActive {
		return fmt.Errorf("%w: post is %s, completion can only be confirmed while active", apperr.ErrInvalidState, p.Status)
	}
	if !p.Delivered {
		return fmt.Errorf("%w: delivery has not been marked yet", apperr.ErrInvalidState)
	}
	return nil
}

// CanRate guards the rating handshake and returns the caller's role so
// the ledger knows which flag to set and whom to credit.
func (p *Post) CanRate(userID string) (Role, error) {
	role, ok := p.RoleOf(userID)
	if !ok {
		return "", fmt.Errorf("%w: only participants of the post may rate", apperr.ErrUnauthorized)
	}
	if p.Status != StatusCompleted {
		return "", fmt.Errorf("%w: post is %s, rating is only possible after completion", apperr.ErrInvalidState, p.Status)
	}
	if p.RatedBy(role) {
		return "", fmt.Errorf("%w: you have already rated this post", apperr.ErrInvalidState)
	}
	return role, nil
}

// RatedBy reports whether the given side has already submitted a rating.
func (p *Post) RatedBy(r Role) bool {
	if r == RoleOwner {
		return p.OwnerRated
	}
	return p.CounterpartyRated
}

// Repository is the listing store contract consumed by the use cases.
// Mutating methods honor a transaction injected into the context.
type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context, kind Kind) ([]*Post, error)
	ListByOwner(ctx context.Context, userID string) ([]*Post, error)
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id string) error
	// Activate assigns the counterparty and flips the status to active,
	// conditionally on the status still being open. Returns
	// apperr.ErrConflict when a concurrent transition won the race.
	Activate(ctx context.Context, id, counterpartyID string) error
	// Cancel flips an open post to cancelled, conditionally like Activate.
	Cancel(ctx context.Context, id string) error
	SetDelivered(ctx context.Context, id string) error
	// Complete sets the confirmation flag and the completed status,
	// conditionally on the status still being active.
	Complete(ctx context.Context, id string) error
	SetRated(ctx context.Context, id string, by Role) error
}
