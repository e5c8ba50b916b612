package usecase

import (
	"context"
	"fmt"

	"github.com/oral0005/backend-posylka/internal/domain/post"
)

type DeletePost struct {
	postRepo post.Repository
}

func NewDeletePost(postRepo post.Repository) *DeletePost {
	return &DeletePost{postRepo: postRepo}
}

func (uc *DeletePost) Execute(ctx context.Context, callerID, postID string) error {
	p, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := p.CanModify(callerID); err != nil {
		return err
	}

	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	return nil
}
