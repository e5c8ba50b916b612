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

type MarkDelivered struct {
	txManager postgres.Transactor
	postRepo  post.Repository
	userRepo  user.Repository
	notify    notifier
}

func NewMarkDelivered(
	txManager postgres.Transactor,
	postRepo post.Repository,
	userRepo user.Repository,
	notificationRepo notification.Repository,
	outboxRepo outbox.Repository,
) *MarkDelivered {
	return &MarkDelivered{
		txManager: txManager,
		postRepo:  postRepo,
		userRepo:  userRepo,
		notify:    notifier{notificationRepo: notificationRepo, outboxRepo: outboxRepo},
	}
}

// Execute sets the deliverer-side completion flag and asks the other
// party to confirm. Which side is the deliverer depends on the post
// kind: the owner of a courier post, the assigned courier of a sender
// post.
func (uc *MarkDelivered) Execute(ctx context.Context, callerID, postID string) (*post.Post, error) {
	p, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := p.CanMarkDelivered(callerID); err != nil {
		return nil, err
	}

	deliverer, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	recipientID := p.UserInRole(post.Other(p.Kind.Deliverer()))

	err = uc.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.postRepo.SetDelivered(txCtx, p.ID); err != nil {
			return err
		}

		return uc.notify.emit(txCtx, recipientID, callerID, p,
			notification.TypeDeliveryMarked, deliveredMessage(deliverer.Username, p))
	})
	if err != nil {
		return nil, fmt.Errorf("mark delivered: %w", err)
	}

	return uc.postRepo.GetByID(ctx, postID)
}
