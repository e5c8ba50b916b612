package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oral0005/backend-posylka/internal/auth"
)

func TestAuth(t *testing.T) {
	tokens, err := auth.NewTokenManager("unit-test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Auth(tokens)(next)

	valid, err := tokens.Issue("user-42")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusNoContent, wantUserID: "user-42"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not a bearer scheme", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "tampered token", header: "Bearer " + valid + "x", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUserID = ""

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if seenUserID != tt.wantUserID {
				t.Errorf("user id = %q, want %q", seenUserID, tt.wantUserID)
			}
		})
	}
}

func TestUserIDOutsideAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := UserID(req.Context()); got != "" {
		t.Errorf(`UserID outside Auth = %q, want ""`, got)
	}
}
