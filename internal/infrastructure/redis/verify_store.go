package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oral0005/backend-posylka/internal/apperr"
)

// VerifyStore holds phone verification codes with an explicit TTL.
// Codes expire on their own; a successful check consumes the code so it
// cannot be replayed.
type VerifyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVerifyStore(client *redis.Client, ttl time.Duration) *VerifyStore {
	return &VerifyStore{client: client, ttl: ttl}
}

func verifyKey(phoneNumber string) string {
	return fmt.Sprintf("verify:%s", phoneNumber)
}

func (s *VerifyStore) Put(ctx context.Context, phoneNumber, code string) error {
	if err := s.client.Set(ctx, verifyKey(phoneNumber), code, s.ttl).Err(); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}
	return nil
}

// Check compares the submitted code against the stored one and deletes
// it on success. An expired or absent code reports not-found.
func (s *VerifyStore) Check(ctx context.Context, phoneNumber, code string) error {
	key := verifyKey(phoneNumber)

	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: no pending verification for this phone number", apperr.ErrNotFound)
		}
		return fmt.Errorf("read verification code: %w", err)
	}

	if stored != code {
		return fmt.Errorf("%w: verification code does not match", apperr.ErrValidation)
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("consume verification code: %w", err)
	}

	return nil
}
