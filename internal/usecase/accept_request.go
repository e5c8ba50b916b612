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

type AcceptRequest struct {
	txManager        postgres.Transactor
	postRepo         post.Repository
	requestRepo      request.Repository
	notificationRepo notification.Repository
	notify           notifier
}

func NewAcceptRequest(
	txManager postgres.Transactor,
	postRepo post.Repository,
	requestRepo request.Repository,
	notificationRepo notification.Repository,
	outboxRepo outbox.Repository,
) *AcceptRequest {
	return &AcceptRequest{
		txManager:        txManager,
		postRepo:         postRepo,
		requestRepo:      requestRepo,
		notificationRepo: notificationRepo,
		notify:           notifier{notificationRepo: notificationRepo, outboxRepo: outboxRepo},
	}
}

// Execute assigns the requester as counterparty and activates the post.
// The activation is a conditional write on status=open, so a concurrent
// accept on the same post loses with a conflict instead of silently
// reassigning. Every other pending request on the post is rejected in
// the same transaction.
func (uc *AcceptRequest) Execute(ctx context.Context, callerID, postID, requestID string) (*post.Post, error) {
	p, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := p.CanDecideRequest(callerID); err != nil {
		return nil, err
	}

	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.PostID != p.ID {
		return nil, fmt.Errorf("%w: request %s does not belong to post %s", apperr.ErrValidation, requestID, postID)
	}
	if req.Status != request.StatusPending {
		return nil, fmt.Errorf("%w: request already %s", apperr.ErrInvalidState, req.Status)
	}

	err = uc.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.postRepo.Activate(txCtx, p.ID, req.RequesterID); err != nil {
			return err
		}

		if err := uc.requestRepo.SetStatus(txCtx, req.ID, request.StatusAccepted); err != nil {
			return err
		}

		if err := uc.notificationRepo.MarkRequestRead(txCtx, p.ID, req.RequesterID); err != nil {
			return err
		}

		if err := uc.notify.emit(txCtx, req.RequesterID, callerID, p,
			notification.TypeAccepted, acceptedMessage(p)); err != nil {
			return err
		}

		// Losing bidders find out immediately rather than watching an
		// already-taken post.
		rejected, err := uc.requestRepo.RejectOtherPending(txCtx, p.ID, req.ID)
		if err != nil {
			return err
		}
		for _, other := range rejected {
			if err := uc.notificationRepo.MarkRequestRead(txCtx, p.ID, other.RequesterID); err != nil {
				return err
			}
			if err := uc.notify.emit(txCtx, other.RequesterID, callerID, p,
				notification.TypeRejected, rejectedMessage(p)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("accept request: %w", err)
	}

	return uc.postRepo.GetByID(ctx, postID)
}
