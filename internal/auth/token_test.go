package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/oral0005/backend-posylka/internal/apperr"
)

func TestTokenRoundTrip(t *testing.T) {
	tm, err := NewTokenManager("unit-test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	token, err := tm.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	subject, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if subject != "user-42" {
		t.Errorf("subject = %s, want user-42", subject)
	}
}

func TestTokenRejections(t *testing.T) {
	tm, err := NewTokenManager("unit-test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("garbage", func(t *testing.T) {
		if _, err := tm.Parse("not.a.token"); !errors.Is(err, apperr.ErrUnauthorized) {
			t.Errorf("Parse() error = %v, want unauthorized", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, _ := NewTokenManager("different-secret", time.Hour)
		token, _ := other.Issue("user-42")

		if _, err := tm.Parse(token); !errors.Is(err, apperr.ErrUnauthorized) {
			t.Errorf("Parse() error = %v, want unauthorized", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		expired, _ := NewTokenManager("unit-test-secret", -time.Minute)
		token, _ := expired.Issue("user-42")

		if _, err := tm.Parse(token); !errors.Is(err, apperr.ErrUnauthorized) {
			t.Errorf("Parse() error = %v, want unauthorized", err)
		}
	})
}

func TestEmptySecretRefused(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour); err == nil {
		t.Error("NewTokenManager accepted an empty secret")
	}
}
