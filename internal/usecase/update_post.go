package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oral0005/backend-posylka/internal/apperr"
	"github.com/oral0005/backend-posylka/internal/domain/post"
)

type UpdatePost struct {
	postRepo post.Repository
}

func NewUpdatePost(postRepo post.Repository) *UpdatePost {
	return &UpdatePost{postRepo: postRepo}
}

// UpdatePostParams carries optional fields; zero values leave the stored
// value untouched, matching the merge semantics of the public API.
type UpdatePostParams struct {
	FromCity    string     `json:"from_city"`
	ToCity      string     `json:"to_city"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Price       *float64   `json:"price"`
	Description string     `json:"description"`
}

func (uc *UpdatePost) Execute(ctx context.Context, callerID, postID string, params UpdatePostParams) (*post.Post, error) {
	p, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := p.CanModify(callerID); err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(params.FromCity); v != "" {
		p.FromCity = v
	}
	if v := strings.TrimSpace(params.ToCity); v != "" {
		p.ToCity = v
	}
	if params.ScheduledAt != nil && !params.ScheduledAt.IsZero() {
		p.ScheduledAt = *params.ScheduledAt
	}
	if params.Price != nil {
		if *params.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", apperr.ErrValidation)
		}
		p.Price = *params.Price
	}
	if params.Description != "" {
		p.Description = params.Description
	}

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	return p, nil
}
