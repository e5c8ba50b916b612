package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oral0005/backend-posylka/internal/domain/notification"
	"github.com/oral0005/backend-posylka/internal/domain/outbox"
	"github.com/oral0005/backend-posylka/internal/domain/post"
	"github.com/oral0005/backend-posylka/internal/domain/request"
	"github.com/oral0005/backend-posylka/internal/domain/user"
	"github.com/oral0005/backend-posylka/internal/infrastructure/postgres"
)

type RequestActivation struct {
	txManager   postgres.Transactor
	postRepo    post.Repository
	requestRepo request.Repository
	userRepo    user.Repository
	notify      notifier
}

func NewRequestActivation(
	txManager postgres.Transactor,
	postRepo post.Repository,
	requestRepo request.Repository,
	userRepo user.Repository,
	notificationRepo notification.Repository,
	outboxRepo outbox.Repository,
) *RequestActivation {
	return &RequestActivation{
		txManager:   txManager,
		postRepo:    postRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		notify:      notifier{notificationRepo: notificationRepo, outboxRepo: outboxRepo},
	}
}

// Execute records a prospective counterparty's bid on an open post. The
// post itself does not change state; the owner is notified and decides.
func (uc *RequestActivation) Execute(ctx context.Context, callerID, postID string) (*request.ActivationRequest, error) {
	p, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := p.CanRequestActivation(callerID); err != nil {
		return nil, err
	}

	requester, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	req := &request.ActivationRequest{
		ID:          uuid.New().String(),
		PostID:      p.ID,
		PostKind:    p.Kind,
		RequesterID: callerID,
		Status:      request.StatusPending,
		CreatedAt:   time.Now(),
	}

	err = uc.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.requestRepo.Create(txCtx, req); err != nil {
			return err
		}

		return uc.notify.emit(txCtx, p.UserID, callerID, p,
			notification.TypeActivationRequest, requestMessage(requester.Username, p))
	})
	if err != nil {
		return nil, fmt.Errorf("request activation: %w", err)
	}

	return req, nil
}
