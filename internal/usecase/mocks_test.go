package usecase

import (
	"context"

	"github.com/oral0005/backend-posylka/internal/domain/notification"
	"github.com/oral0005/backend-posylka/internal/domain/outbox"
	"github.com/oral0005/backend-posylka/internal/domain/post"
	"github.com/oral0005/backend-posylka/internal/domain/request"
	"github.com/oral0005/backend-posylka/internal/domain/user"
)

// The mocks below follow the func-field pattern: a test assigns only the
// methods it cares about, everything else is a no-op.

type mockTx struct{}

func (mockTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockPostRepo struct {
	GetByIDFunc      func(ctx context.Context, id string) (*post.Post, error)
	CreateFunc       func(ctx context.Context, p *post.Post) error
	ListFunc         func(ctx context.Context, kind post.Kind) ([]*post.Post, error)
	ListByOwnerFunc  func(ctx context.Context, userID string) ([]*post.Post, error)
	UpdateFunc       func(ctx context.Context, p *post.Post) error
	DeleteFunc       func(ctx context.Context, id string) error
	ActivateFunc     func(ctx context.Context, id, counterpartyID string) error
	CancelFunc       func(ctx context.Context, id string) error
	SetDeliveredFunc func(ctx context.Context, id string) error
	CompleteFunc     func(ctx context.Context, id string) error
	SetRatedFunc     func(ctx context.Context, id string, by post.Role) error
}

func (m *mockPostRepo) GetByID(ctx context.Context, id string) (*post.Post, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockPostRepo) Create(ctx context.Context, p *post.Post) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *mockPostRepo) List(ctx context.Context, kind post.Kind) ([]*post.Post, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, kind)
	}
	return nil, nil
}

func (m *mockPostRepo) ListByOwner(ctx context.Context, userID string) ([]*post.Post, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockPostRepo) Update(ctx context.Context, p *post.Post) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPostRepo) Activate(ctx context.Context, id, counterpartyID string) error {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, id, counterpartyID)
	}
	return nil
}

func (m *mockPostRepo) Cancel(ctx context.Context, id string) error {
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, id)
	}
	return nil
}

func (m *mockPostRepo) SetDelivered(ctx context.Context, id string) error {
	if m.SetDeliveredFunc != nil {
		return m.SetDeliveredFunc(ctx, id)
	}
	return nil
}

func (m *mockPostRepo) Complete(ctx context.Context, id string) error {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPostRepo) SetRated(ctx context.Context, id string, by post.Role) error {
	if m.SetRatedFunc != nil {
		return m.SetRatedFunc(ctx, id, by)
	}
	return nil
}

type mockUserRepo struct {
	CreateFunc        func(ctx context.Context, u *user.User) error
	GetByIDFunc       func(ctx context.Context, id string) (*user.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*user.User, error)
	GetByPhoneFunc    func(ctx context.Context, phoneNumber string) (*user.User, error)
	SetVerifiedFunc   func(ctx context.Context, id string) error
	ApplyRatingFunc   func(ctx context.Context, id string, rating int) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &user.User{ID: id, Username: "someone"}, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return m.GetByUsernameFunc(ctx, username)
}

func (m *mockUserRepo) GetByPhone(ctx context.Context, phoneNumber string) (*user.User, error) {
	return m.GetByPhoneFunc(ctx, phoneNumber)
}

func (m *mockUserRepo) SetVerified(ctx context.Context, id string) error {
	if m.SetVerifiedFunc != nil {
		return m.SetVerifiedFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepo) ApplyRating(ctx context.Context, id string, rating int) error {
	if m.ApplyRatingFunc != nil {
		return m.ApplyRatingFunc(ctx, id, rating)
	}
	return nil
}

type mockRequestRepo struct {
	CreateFunc             func(ctx context.Context, r *request.ActivationRequest) error
	GetByIDFunc            func(ctx context.Context, id string) (*request.ActivationRequest, error)
	ListPendingByPostFunc  func(ctx context.Context, postID string) ([]*request.ActivationRequest, error)
	SetStatusFunc          func(ctx context.Context, id string, status request.Status) error
	RejectOtherPendingFunc func(ctx context.Context, postID, acceptedID string) ([]*request.ActivationRequest, error)
}

func (m *mockRequestRepo) Create(ctx context.Context, r *request.ActivationRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r)
	}
	return nil
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id string) (*request.ActivationRequest, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockRequestRepo) ListPendingByPost(ctx context.Context, postID string) ([]*request.ActivationRequest, error) {
	if m.ListPendingByPostFunc != nil {
		return m.ListPendingByPostFunc(ctx, postID)
	}
	return nil, nil
}

func (m *mockRequestRepo) SetStatus(ctx context.Context, id string, status request.Status) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockRequestRepo) RejectOtherPending(ctx context.Context, postID, acceptedID string) ([]*request.ActivationRequest, error) {
	if m.RejectOtherPendingFunc != nil {
		return m.RejectOtherPendingFunc(ctx, postID, acceptedID)
	}
	return nil, nil
}

type mockNotificationRepo struct {
	created []*notification.Notification

	MarkReadFunc        func(ctx context.Context, id string) error
	MarkRequestReadFunc func(ctx context.Context, postID, actorID string) error
	GetByIDFunc         func(ctx context.Context, id string) (*notification.Notification, error)
	ListByRecipientFunc func(ctx context.Context, recipientID string) ([]*notification.Notification, error)
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	m.created = append(m.created, n)
	return nil
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, id string) (*notification.Notification, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockNotificationRepo) ListByRecipient(ctx context.Context, recipientID string) ([]*notification.Notification, error) {
	if m.ListByRecipientFunc != nil {
		return m.ListByRecipientFunc(ctx, recipientID)
	}
	return nil, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id string) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, id)
	}
	return nil
}

func (m *mockNotificationRepo) MarkRequestRead(ctx context.Context, postID, actorID string) error {
	if m.MarkRequestReadFunc != nil {
		return m.MarkRequestReadFunc(ctx, postID, actorID)
	}
	return nil
}

type mockOutboxRepo struct {
	created []*outbox.Event
}

func (m *mockOutboxRepo) Create(ctx context.Context, e *outbox.Event) error {
	m.created = append(m.created, e)
	return nil
}

func (m *mockOutboxRepo) FetchBatch(ctx context.Context, limit int) ([]*outbox.Event, error) {
	return nil, nil
}

func (m *mockOutboxRepo) MarkProcessed(ctx context.Context, ids []string) error { return nil }

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, ids []string) error { return nil }
