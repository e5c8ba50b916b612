package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/oral0005/backend-posylka/internal/apperr"
	"github.com/oral0005/backend-posylka/internal/domain/post"
)

func completedPost(kind post.Kind) *post.Post {
	p := openPost(kind, "owner-1")
	p.CounterpartyID = "courier-1"
	p.Status = post.StatusCompleted
	p.Delivered = true
	p.Confirmed = true
	return p
}

func TestRateUser_CreditsTheOtherParty(t *testing.T) {
	tests := []struct {
		name       string
		caller     string
		wantTarget string
		wantRole   post.Role
	}{
		{name: "owner rates the courier", caller: "owner-1", wantTarget: "courier-1", wantRole: post.RoleOwner},
		{name: "courier rates the owner", caller: "courier-1", wantTarget: "owner-1", wantRole: post.RoleCounterparty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ratedRole post.Role
			postRepo := &mockPostRepo{
				GetByIDFunc: func(ctx context.Context, id string) (*post.Post, error) {
					return completedPost(post.KindSender), nil
				},
				SetRatedFunc: func(ctx context.Context, id string, by post.Role) error {
					ratedRole = by
					return nil
				},
			}

			var targetID string
			var applied int
			userRepo := &mockUserRepo{
				ApplyRatingFunc: func(ctx context.Context, id string, rating int) error {
					targetID = id
					applied = rating
					return nil
				},
			}

			uc := NewRateUser(mockTx{}, postRepo, userRepo)

			if err := uc.Execute(context.Background(), tt.caller, "post-1", 4); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if ratedRole != tt.wantRole {
				t.Errorf("rated role = %s, want %s", ratedRole, tt.wantRole)
			}
			if targetID != tt.wantTarget || applied != 4 {
				t.Errorf("applied rating %d to %s, want 4 to %s", applied, targetID, tt.wantTarget)
			}
		})
	}
}

func TestRateUser_Guards(t *testing.T) {
	tests := []struct {
		name    string
		caller  string
		rating  int
		post    func() *post.Post
		wantErr error
	}{
		{
			name:    "rating below range",
			caller:  "owner-1",
			rating:  0,
			post:    func() *post.Post { return completedPost(post.KindSender) },
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "rating above range",
			caller:  "owner-1",
			rating:  6,
			post:    func() *post.Post { return completedPost(post.KindSender) },
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "outsider cannot rate",
			caller:  "stranger",
			rating:  5,
			post:    func() *post.Post { return completedPost(post.KindSender) },
			wantErr: apperr.ErrUnauthorized,
		},
		{
			name:   "post not completed yet",
			caller: "owner-1",
			rating: 5,
			post: func() *post.Post {
				p := completedPost(post.KindSender)
				p.Status = post.StatusActive
				return p
			},
			wantErr: apperr.ErrInvalidState,
		},
		{
			name:   "second rating by the same side",
			caller: "owner-1",
			rating: 5,
			post: func() *post.Post {
				p := completedPost(post.KindSender)
				p.OwnerRated = true
				return p
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
			userRepo := &mockUserRepo{
				ApplyRatingFunc: func(ctx context.Context, id string, rating int) error {
					t.Error("ApplyRating must not be reached on a guard failure")
					return nil
				},
			}

			uc := NewRateUser(mockTx{}, postRepo, userRepo)

			err := uc.Execute(context.Background(), tt.caller, "post-1", tt.rating)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
