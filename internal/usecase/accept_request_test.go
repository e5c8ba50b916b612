package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oral0005/backend-posylka/internal/apperr"
	"github.com/oral0005/backend-posylka/internal/domain/notification"
	"github.com/oral0005/backend-posylka/internal/domain/post"
	"github.com/oral0005/backend-posylka/internal/domain/request"
)

func openPost(kind post.Kind, ownerID string) *post.Post {
	return &post.Post{
		ID:          "post-1",
		Kind:        kind,
		UserID:      ownerID,
		FromCity:    "Almaty",
		ToCity:      "Astana",
		ScheduledAt: time.Now().Add(48 * time.Hour),
		Price:       5000,
		Status:      post.StatusOpen,
	}
}

func pendingRequest(id, postID, requesterID string) *request.ActivationRequest {
	return &request.ActivationRequest{
		ID:          id,
		PostID:      postID,
		PostKind:    post.KindSender,
		RequesterID: requesterID,
		Status:      request.StatusPending,
	}
}

func TestAcceptRequest_AssignsCounterpartyAndRejectsOthers(t *testing.T) {
	p := openPost(post.KindSender, "owner-1")

	var activatedWith string
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*post.Post, error) {
			if activatedWith != "" {
				cp := *p
				cp.Status = post.StatusActive
				cp.CounterpartyID = activatedWith
				return &cp, nil
			}
			return p, nil
		},
		ActivateFunc: func(ctx context.Context, id, counterpartyID string) error {
			activatedWith = counterpartyID
			return nil
		},
	}

	statuses := map[string]request.Status{}
	requestRepo := &mockRequestRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*request.ActivationRequest, error) {
			return pendingRequest(id, p.ID, "courier-1"), nil
		},
		SetStatusFunc: func(ctx context.Context, id string, status request.Status) error {
			statuses[id] = status
			return nil
		},
		RejectOtherPendingFunc: func(ctx context.Context, postID, acceptedID string) ([]*request.ActivationRequest, error) {
			return []*request.ActivationRequest{pendingRequest("req-2", postID, "courier-2")}, nil
		},
	}

	notificationRepo := &mockNotificationRepo{}
	outboxRepo := &mockOutboxRepo{}

	uc := NewAcceptRequest(mockTx{}, postRepo, requestRepo, notificationRepo, outboxRepo)

	got, err := uc.Execute(context.Background(), "owner-1", p.ID, "req-1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got.Status != post.StatusActive || got.CounterpartyID != "courier-1" {
		t.Errorf("post after accept = %s/%s, want active/courier-1", got.Status, got.CounterpartyID)
	}
	if statuses["req-1"] != request.StatusAccepted {
		t.Errorf("accepted request status = %s, want accepted", statuses["req-1"])
	}

	if len(notificationRepo.created) != 2 {
		t.Fatalf("created %d notifications, want 2", len(notificationRepo.created))
	}
	winner, loser := notificationRepo.created[0], notificationRepo.created[1]
	if winner.RecipientID != "courier-1" || winner.Type != notification.TypeAccepted {
		t.Errorf("winner notification = %s/%s, want courier-1/accepted", winner.RecipientID, winner.Type)
	}
	if loser.RecipientID != "courier-2" || loser.Type != notification.TypeRejected {
		t.Errorf("loser notification = %s/%s, want courier-2/rejected", loser.RecipientID, loser.Type)
	}

	if len(outboxRepo.created) != 2 {
		t.Fatalf("created %d outbox events, want 2", len(outboxRepo.created))
	}
	for _, e := range outboxRepo.created {
		if e.EventType != "NotificationCreated" {
			t.Errorf("outbox event type = %s, want NotificationCreated", e.EventType)
		}
		if e.CorrelationID != p.ID {
			t.Errorf("outbox correlation id = %s, want %s", e.CorrelationID, p.ID)
		}
	}
}

func TestAcceptRequest_Guards(t *testing.T) {
	tests := []struct {
		name    string
		caller  string
		post    func() *post.Post
		request func() *request.ActivationRequest
		wantErr error
	}{
		{
			name:    "not the owner",
			caller:  "stranger",
			post:    func() *post.Post { return openPost(post.KindSender, "owner-1") },
			request: func() *request.ActivationRequest { return pendingRequest("req-1", "post-1", "courier-1") },
			wantErr: apperr.ErrUnauthorized,
		},
		{
			name:   "post no longer open",
			caller: "owner-1",
			post: func() *post.Post {
				p := openPost(post.KindSender, "owner-1")
				p.Status = post.StatusActive
				p.CounterpartyID = "courier-9"
				return p
			},
			request: func() *request.ActivationRequest { return pendingRequest("req-1", "post-1", "courier-1") },
			wantErr: apperr.ErrInvalidState,
		},
		{
			name:    "request from another post",
			caller:  "owner-1",
			post:    func() *post.Post { return openPost(post.KindSender, "owner-1") },
			request: func() *request.ActivationRequest { return pendingRequest("req-1", "other-post", "courier-1") },
			wantErr: apperr.ErrValidation,
		},
		{
			name:   "request already decided",
			caller: "owner-1",
			post:   func() *post.Post { return openPost(post.KindSender, "owner-1") },
			request: func() *request.ActivationRequest {
				r := pendingRequest("req-1", "post-1", "courier-1")
				r.Status = request.StatusRejected
				return r
			},
			wantErr: apperr.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := &mockPostRepo{
				GetByIDFunc: func(ctx context.Context, id string) (*post.Post, error) {
					return tt.post(), nil
				},
			}
			requestRepo := &mockRequestRepo{
				GetByIDFunc: func(ctx context.Context, id string) (*request.ActivationRequest, error) {
					return tt.request(), nil
				},
			}

			uc := NewAcceptRequest(mockTx{}, postRepo, requestRepo, &mockNotificationRepo{}, &mockOutboxRepo{})

			_, err := uc.Execute(context.Background(), tt.caller, "post-1", "req-1")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAcceptRequest_LostRaceSurfacesConflict(t *testing.T) {
	p := openPost(post.KindSender, "owner-1")

	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*post.Post, error) { return p, nil },
		ActivateFunc: func(ctx context.Context, id, counterpartyID string) error {
			// A concurrent accept committed first.
			return apperr.ErrConflict
		},
	}
	requestRepo := &mockRequestRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*request.ActivationRequest, error) {
			return pendingRequest(id, p.ID, "courier-1"), nil
		},
	}

	uc := NewAcceptRequest(mockTx{}, postRepo, requestRepo, &mockNotificationRepo{}, &mockOutboxRepo{})

	_, err := uc.Execute(context.Background(), "owner-1", p.ID, "req-1")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("Execute() error = %v, want conflict", err)
	}
}
