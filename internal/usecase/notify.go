package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oral0005/backend-posylka/internal/domain/notification"
	"github.com/oral0005/backend-posylka/internal/domain/outbox"
	"github.com/oral0005/backend-posylka/internal/domain/post"
)

const producerName = "posylka-api"

// notifier appends a notification row and its outbox event in the
// caller's transaction. Every lifecycle transition that changes who is
// waiting on whom goes through here exactly once per recipient.
type notifier struct {
	notificationRepo notification.Repository
	outboxRepo       outbox.Repository
}

func (n notifier) emit(ctx context.Context, recipientID, actorID string, p *post.Post, typ notification.Type, message string) error {
	record := &notification.Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		ActorID:     actorID,
		PostID:      p.ID,
		PostKind:    p.Kind,
		Type:        typ,
		Message:     message,
		CreatedAt:   time.Now(),
	}

	if err := n.notificationRepo.Create(ctx, record); err != nil {
		return err
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	event := &outbox.Event{
		ID:            uuid.New().String(),
		EventType:     outbox.EventNotificationCreated,
		Payload:       payload,
		Status:        "new",
		CorrelationID: p.ID,
		Producer:      producerName,
		CreatedAt:     time.Now(),
	}

	return n.outboxRepo.Create(ctx, event)
}

func route(p *post.Post) string {
	return p.FromCity + " - " + p.ToCity
}

func requestMessage(actorName string, p *post.Post) string {
	if p.Kind == post.KindCourier {
		return fmt.Sprintf("%s wants to send a parcel with your trip %s", actorName, route(p))
	}
	return fmt.Sprintf("%s offers to deliver your parcel %s", actorName, route(p))
}

func acceptedMessage(p *post.Post) string {
	return fmt.Sprintf("Your request on the %s post %s was accepted", p.Kind, route(p))
}

func rejectedMessage(p *post.Post) string {
	return fmt.Sprintf("Your request on the %s post %s was rejected", p.Kind, route(p))
}

func deliveredMessage(actorName string, p *post.Post) string {
	return fmt.Sprintf("%s marked the parcel %s as delivered, please confirm", actorName, route(p))
}

func completedMessage(actorName string, p *post.Post) string {
	return fmt.Sprintf("%s confirmed delivery of the parcel %s", actorName, route(p))
}
