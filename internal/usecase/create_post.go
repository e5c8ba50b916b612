package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oral0005/backend-posylka/internal/apperr"
	"github.com/oral0005/backend-posylka/internal/domain/post"
)

type CreatePost struct {
	postRepo post.Repository
}

func NewCreatePost(postRepo post.Repository) *CreatePost {
	return &CreatePost{postRepo: postRepo}
}

type CreatePostParams struct {
	Kind        string    `json:"kind"`
	FromCity    string    `json:"from_city"`
	ToCity      string    `json:"to_city"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
}

func (uc *CreatePost) Execute(ctx context.Context, ownerID string, params CreatePostParams) (*post.Post, error) {
	kind, err := post.ParseKind(params.Kind)
	if err != nil {
		return nil, err
	}

	fromCity := strings.TrimSpace(params.FromCity)
	toCity := strings.TrimSpace(params.ToCity)
	switch {
	case fromCity == "" || toCity == "":
		return nil, fmt.Errorf("%w: from_city and to_city are required", apperr.ErrValidation)
	case params.ScheduledAt.IsZero():
		return nil, fmt.Errorf("%w: scheduled_at is required", apperr.ErrValidation)
	case params.Price <= 0:
		return nil, fmt.Errorf("%w: price must be positive", apperr.ErrValidation)
	}

	now := time.Now()
	newPost := &post.Post{
		ID:          uuid.New().String(),
		Kind:        kind,
		UserID:      ownerID,
		FromCity:    fromCity,
		ToCity:      toCity,
		ScheduledAt: params.ScheduledAt,
		Price:       params.Price,
		Description: params.Description,
		Status:      post.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.postRepo.Create(ctx, newPost); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return newPost, nil
}
