package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/oral0005/backend-posylka/internal/apperr"
	"github.com/oral0005/backend-posylka/internal/auth"
	"github.com/oral0005/backend-posylka/internal/domain/post"
	"github.com/oral0005/backend-posylka/internal/domain/user"
	"github.com/oral0005/backend-posylka/internal/usecase"
)

// stubPostStore is an in-memory post.Repository for wiring real use
// cases under the router.
type stubPostStore struct {
	posts map[string]*post.Post
}

func (s *stubPostStore) get(id string) (*post.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("%w: post %s", apperr.ErrNotFound, id)
	}
	return p, nil
}

func (s *stubPostStore) Create(ctx context.Context, p *post.Post) error {
	s.posts[p.ID] = p
	return nil
}

func (s *stubPostStore) GetByID(ctx context.Context, id string) (*post.Post, error) {
	return s.get(id)
}

func (s *stubPostStore) List(ctx context.Context, kind post.Kind) ([]*post.Post, error) {
	var out []*post.Post
	for _, p := range s.posts {
		if kind == "" || p.Kind == kind {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPostStore) ListByOwner(ctx context.Context, userID string) ([]*post.Post, error) {
	var out []*post.Post
	for _, p := range s.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPostStore) Update(ctx context.Context, p *post.Post) error {
	s.posts[p.ID] = p
	return nil
}

func (s *stubPostStore) Delete(ctx context.Context, id string) error {
	delete(s.posts, id)
	return nil
}

func (s *stubPostStore) Activate(ctx context.Context, id, counterpartyID string) error {
	p, err := s.get(id)
	if err != nil {
		return err
	}
	if p.Status != post.StatusOpen {
		return fmt.Errorf("%w: post already taken", apperr.ErrConflict)
	}
	p.Status = post.StatusActive
	p.CounterpartyID = counterpartyID
	return nil
}

func (s *stubPostStore) Cancel(ctx context.Context, id string) error {
	p, err := s.get(id)
	if err != nil {
		return err
	}
	p.Status = post.StatusCancelled
	return nil
}

func (s *stubPostStore) SetDelivered(ctx context.Context, id string) error {
	p, err := s.get(id)
	if err != nil {
		return err
	}
	p.Delivered = true
	return nil
}

func (s *stubPostStore) Complete(ctx context.Context, id string) error {
	p, err := s.get(id)
	if err != nil {
		return err
	}
	p.Confirmed = true
	p.Status = post.StatusCompleted
	return nil
}

func (s *stubPostStore) SetRated(ctx context.Context, id string, by post.Role) error {
	p, err := s.get(id)
	if err != nil {
		return err
	}
	if by == post.RoleOwner {
		p.OwnerRated = true
	} else {
		p.CounterpartyRated = true
	}
	return nil
}

type stubUserStore struct{}

func (stubUserStore) Create(ctx context.Context, u *user.User) error { return nil }

func (stubUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	return &user.User{ID: id, Username: "user-" + id}, nil
}

func (stubUserStore) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return nil, fmt.Errorf("%w: user", apperr.ErrNotFound)
}

func (stubUserStore) GetByPhone(ctx context.Context, phoneNumber string) (*user.User, error) {
	return nil, fmt.Errorf("%w: user", apperr.ErrNotFound)
}

func (stubUserStore) SetVerified(ctx context.Context, id string) error { return nil }

func (stubUserStore) ApplyRating(ctx context.Context, id string, rating int) error { return nil }

func newTestServer(t *testing.T, store *stubPostStore) (http.Handler, *auth.TokenManager) {
	t.Helper()

	tokens, err := auth.NewTokenManager("router-test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	h := NewHandlers(HandlersDeps{
		UpdatePost: usecase.NewUpdatePost(store),
		CancelPost: usecase.NewCancelPost(store),
		GetPosts:   usecase.NewGetPosts(store, stubUserStore{}),
	})

	return NewRouter(h, tokens, nil), tokens
}

func TestRouterErrorMapping(t *testing.T) {
	store := &stubPostStore{posts: map[string]*post.Post{
		"post-1": {
			ID:       "post-1",
			Kind:     post.KindCourier,
			UserID:   "owner-1",
			FromCity: "Almaty",
			ToCity:   "Astana",
			Price:    4000,
			Status:   post.StatusOpen,
		},
	}}

	router, tokens := newTestServer(t, store)

	ownerToken, err := tokens.Issue("owner-1")
	if err != nil {
		t.Fatal(err)
	}
	strangerToken, err := tokens.Issue("stranger")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		token      string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "public read of an existing post",
			method:     http.MethodGet,
			path:       "/api/v1/posts/post-1",
			wantStatus: http.StatusOK,
			wantBody:   `"from_city":"Almaty"`,
		},
		{
			name:       "owner profile is embedded in the listing",
			method:     http.MethodGet,
			path:       "/api/v1/posts/post-1",
			wantStatus: http.StatusOK,
			wantBody:   `"username":"user-owner-1"`,
		},
		{
			name:       "unknown post maps to 404",
			method:     http.MethodGet,
			path:       "/api/v1/posts/missing",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "mutation without a token",
			method:     http.MethodPut,
			path:       "/api/v1/posts/post-1",
			body:       `{"price": 5000}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "mutation by a non-owner maps to 403",
			method:     http.MethodPut,
			path:       "/api/v1/posts/post-1",
			body:       `{"price": 5000}`,
			token:      strangerToken,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "invalid price maps to 400",
			method:     http.MethodPut,
			path:       "/api/v1/posts/post-1",
			body:       `{"price": -5}`,
			token:      ownerToken,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "owner updates the price",
			method:     http.MethodPut,
			path:       "/api/v1/posts/post-1",
			body:       `{"price": 5000}`,
			token:      ownerToken,
			wantStatus: http.StatusOK,
			wantBody:   `"price":5000`,
		},
		{
			name:       "owner cancels the post",
			method:     http.MethodPost,
			path:       "/api/v1/posts/post-1/cancel",
			token:      ownerToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "update after cancellation maps to 422",
			method:     http.MethodPut,
			path:       "/api/v1/posts/post-1",
			body:       `{"price": 6000}`,
			token:      ownerToken,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body *strings.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			} else {
				body = strings.NewReader("")
			}

			req := httptest.NewRequest(tt.method, tt.path, body)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantBody != "" && !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	router, _ := newTestServer(t, &stubPostStore{posts: map[string]*post.Post{}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
