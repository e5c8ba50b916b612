package usecase

import (
	"context"
	"fmt"

	"github.com/oral0005/backend-posylka/internal/domain/notification"
	"github.com/oral0005/backend-posylka/internal/domain/outbox"
	"github.com/oral0005/backend-posylka/internal/domain/post"
	"github.com/oral0005/backend-posylka/internal/domain/user"
	"github.com/oral0005/backend-posylka/internal/infrastructure/postgres"
)

type ConfirmCompletion struct {
	txManager postgres.Transactor
	postRepo  post.Repository
	userRepo  user.Repository
	notify    notifier
}

func NewConfirmCompletion(
	txManager postgres.Transactor,
	postRepo post.Repository,
	userRepo user.Repository,
	notificationRepo notification.Repository,
	outboxRepo outbox.Repository,
) *ConfirmCompletion {
	return &ConfirmCompletion{
		txManager: txManager,
		postRepo:  postRepo,
		userRepo:  userRepo,
		notify:    notifier{notificationRepo: notificationRepo, outboxRepo: outboxRepo},
	}
}

// Execute acknowledges a marked delivery, finalizing the post. From here
// the only remaining transition is the rating handshake.
func (uc *ConfirmCompletion) Execute(ctx context.Context, callerID, postID string) (*post.Post, error) {
	p, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := p.CanConfirm(callerID); err != nil {
		return nil, err
	}

	confirmer, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	delivererID := p.UserInRole(p.Kind.Deliverer())

	err = uc.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.postRepo.Complete(txCtx, p.ID); err != nil {
			return err
		}

		return uc.notify.emit(txCtx, delivererID, callerID, p,
			notification.TypeCompleted, completedMessage(confirmer.Username, p))
	})
	if err != nil {
		return nil, fmt.Errorf("confirm completion: %w", err)
	}

	return uc.postRepo.GetByID(ctx, postID)
}
