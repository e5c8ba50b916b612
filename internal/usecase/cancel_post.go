package usecase

import (
	"context"
	"fmt"

	"github.com/oral0005/backend-posylka/internal/domain/post"
)

type CancelPost struct {
	postRepo post.Repository
}

func NewCancelPost(postRepo post.Repository) *CancelPost {
	return &CancelPost{postRepo: postRepo}
}

func (uc *CancelPost) Execute(ctx context.Context, callerID, postID string) error {
	p, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := p.CanModify(callerID); err != nil {
		return err
	}

	if err := uc.postRepo.Cancel(ctx, postID); err != nil {
		return fmt.Errorf("cancel post: %w", err)
	}

	return nil
}
