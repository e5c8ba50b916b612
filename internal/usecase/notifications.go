package usecase

import (
	"context"
	"fmt"

	"github.com/oral0005/backend-posylka/internal/apperr"
	"github.com/oral0005/backend-posylka/internal/domain/notification"
)

type Notifications struct {
	notificationRepo notification.Repository
}

func NewNotifications(notificationRepo notification.Repository) *Notifications {
	return &Notifications{notificationRepo: notificationRepo}
}

func (uc *Notifications) List(ctx context.Context, callerID string) ([]*notification.Notification, error) {
	return uc.notificationRepo.ListByRecipient(ctx, callerID)
}

// MarkRead flips the read flag; only the recipient may do so.
func (uc *Notifications) MarkRead(ctx context.Context, callerID, notificationID string) error {
	n, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if n.RecipientID != callerID {
		return fmt.Errorf("%w: not the recipient of this notification", apperr.ErrUnauthorized)
	}

	if err := uc.notificationRepo.MarkRead(ctx, notificationID); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}

	return nil
}
