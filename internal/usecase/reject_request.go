package usecase

import (
	"context"
	"fmt"

	"github.com/oral0005/backend-posylka/internal/apperr"
	"github.com/oral0005/backend-posylka/internal/domain/notification"
	"github.com/oral0005/backend-posylka/internal/domain/outbox"
	"github.com/oral0005/backend-posylka/internal/domain/post"
	"github.com/oral0005/backend-posylka/internal/domain/request"
	"github.com/oral0005/backend-posylka/internal/infrastructure/postgres"
)

type RejectRequest struct {
	txManager        postgres.Transactor
	postRepo         post.Repository
	requestRepo      request.Repository
	notificationRepo notification.Repository
	notify           notifier
}

func NewRejectRequest(
	txManager postgres.Transactor,
	postRepo post.Repository,
	requestRepo request.Repository,
	notificationRepo notification.Repository,
	outboxRepo outbox.Repository,
) *RejectRequest {
	return &RejectRequest{
		txManager:        txManager,
		postRepo:         postRepo,
		requestRepo:      requestRepo,
		notificationRepo: notificationRepo,
		notify:           notifier{notificationRepo: notificationRepo, outboxRepo: outboxRepo},
	}
}

// Execute declines one pending request. The post stays open; other
// pending requests are untouched.
func (uc *RejectRequest) Execute(ctx context.Context, callerID, postID, requestID string) error {
	p, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := p.CanDecideRequest(callerID); err != nil {
		return err
	}

	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.PostID != p.ID {
		return fmt.Errorf("%w: request %s does not belong to post %s", apperr.ErrValidation, requestID, postID)
	}
	if req.Status != request.StatusPending {
		return fmt.Errorf("%w: request already %s", apperr.ErrInvalidState, req.Status)
	}

	err = uc.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.requestRepo.SetStatus(txCtx, req.ID, request.StatusRejected); err != nil {
			return err
		}

		if err := uc.notificationRepo.MarkRequestRead(txCtx, p.ID, req.RequesterID); err != nil {
			return err
		}

		return uc.notify.emit(txCtx, req.RequesterID, callerID, p,
			notification.TypeRejected, rejectedMessage(p))
	})
	if err != nil {
		return fmt.Errorf("reject request: %w", err)
	}

	return nil
}
