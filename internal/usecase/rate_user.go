package usecase

import (
	"context"
	"fmt"

	"github.com/oral0005/backend-posylka/internal/apperr"
	"github.com/oral0005/backend-posylka/internal/domain/post"
	"github.com/oral0005/backend-posylka/internal/domain/user"
	"github.com/oral0005/backend-posylka/internal/infrastructure/postgres"
)

type RateUser struct {
	txManager postgres.Transactor
	postRepo  post.Repository
	userRepo  user.Repository
}

func NewRateUser(
	txManager postgres.Transactor,
	postRepo post.Repository,
	userRepo user.Repository,
) *RateUser {
	return &RateUser{
		txManager: txManager,
		postRepo:  postRepo,
		userRepo:  userRepo,
	}
}

// Execute submits the caller's one-time rating of the other party on a
// completed post. The flag flip and the ledger update commit together,
// so the average is never double-counted even if the caller retries.
func (uc *RateUser) Execute(ctx context.Context, callerID, postID string, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", apperr.ErrValidation)
	}

	p, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	role, err := p.CanRate(callerID)
	if err != nil {
		return err
	}

	targetID := p.UserInRole(post.Other(role))

	err = uc.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.postRepo.SetRated(txCtx, p.ID, role); err != nil {
			return err
		}

		return uc.userRepo.ApplyRating(txCtx, targetID, rating)
	})
	if err != nil {
		return fmt.Errorf("rate user: %w", err)
	}

	return nil
}
