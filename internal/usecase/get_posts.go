package usecase

import (
	"context"
	"fmt"

	"github.com/oral0005/backend-posylka/internal/domain/post"
	"github.com/oral0005/backend-posylka/internal/domain/request"
	"github.com/oral0005/backend-posylka/internal/domain/user"
)

// PostDTO is the listing representation returned to clients: the post
// plus the public profiles of its parties, the way the feed renders it.
type PostDTO struct {
	*post.Post
	Owner        *user.Public `json:"owner,omitempty"`
	Counterparty *user.Public `json:"counterparty,omitempty"`
}

type GetPosts struct {
	postRepo post.Repository
	userRepo user.Repository
}

func NewGetPosts(postRepo post.Repository, userRepo user.Repository) *GetPosts {
	return &GetPosts{postRepo: postRepo, userRepo: userRepo}
}

func (uc *GetPosts) ByID(ctx context.Context, postID string) (*PostDTO, error) {
	p, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	dtos, err := uc.populate(ctx, []*post.Post{p})
	if err != nil {
		return nil, err
	}

	return dtos[0], nil
}

// List returns all posts of a kind (or all posts when kind is empty),
// newest first, with owner profiles attached.
func (uc *GetPosts) List(ctx context.Context, kind post.Kind) ([]*PostDTO, error) {
	posts, err := uc.postRepo.List(ctx, kind)
	if err != nil {
		return nil, err
	}

	return uc.populate(ctx, posts)
}

func (uc *GetPosts) ListByOwner(ctx context.Context, userID string) ([]*PostDTO, error) {
	posts, err := uc.postRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	return uc.populate(ctx, posts)
}

func (uc *GetPosts) populate(ctx context.Context, posts []*post.Post) ([]*PostDTO, error) {
	// Posts share owners; fetch each profile once.
	profiles := map[string]*user.Public{}
	lookup := func(id string) (*user.Public, error) {
		if id == "" {
			return nil, nil
		}
		if p, ok := profiles[id]; ok {
			return p, nil
		}
		u, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("populate post user: %w", err)
		}
		profiles[id] = u.Public()
		return profiles[id], nil
	}

	dtos := make([]*PostDTO, 0, len(posts))
	for _, p := range posts {
		owner, err := lookup(p.UserID)
		if err != nil {
			return nil, err
		}
		counterparty, err := lookup(p.CounterpartyID)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, &PostDTO{Post: p, Owner: owner, Counterparty: counterparty})
	}

	return dtos, nil
}

// ListPendingRequests shows the owner who is bidding on their post.
type ListPendingRequests struct {
	postRepo    post.Repository
	requestRepo request.Repository
}

func NewListPendingRequests(postRepo post.Repository, requestRepo request.Repository) *ListPendingRequests {
	return &ListPendingRequests{postRepo: postRepo, requestRepo: requestRepo}
}

func (uc *ListPendingRequests) Execute(ctx context.Context, callerID, postID string) ([]*request.ActivationRequest, error) {
	p, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := p.CanDecideRequest(callerID); err != nil {
		return nil, err
	}

	return uc.requestRepo.ListPendingByPost(ctx, postID)
}
