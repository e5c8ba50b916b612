package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/oral0005/backend-posylka/internal/domain/user"
	"github.com/oral0005/backend-posylka/internal/infrastructure/sms"
)

// CodeStore is the expiring verification-code keeper (redis-backed in
// production). Codes live for a bounded TTL and are consumed on a
// successful check.
type CodeStore interface {
	Put(ctx context.Context, phoneNumber, code string) error
	Check(ctx context.Context, phoneNumber, code string) error
}

type SendVerification struct {
	userRepo user.Repository
	codes    CodeStore
	sender   sms.Sender
}

func NewSendVerification(userRepo user.Repository, codes CodeStore, sender sms.Sender) *SendVerification {
	return &SendVerification{userRepo: userRepo, codes: codes, sender: sender}
}

func (uc *SendVerification) Execute(ctx context.Context, phoneNumber string) error {
	if _, err := uc.userRepo.GetByPhone(ctx, phoneNumber); err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	if err := uc.codes.Put(ctx, phoneNumber, code); err != nil {
		return err
	}

	return uc.sender.Send(ctx, phoneNumber, fmt.Sprintf("Your verification code is %s", code))
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

type CheckVerification struct {
	userRepo user.Repository
	codes    CodeStore
}

func NewCheckVerification(userRepo user.Repository, codes CodeStore) *CheckVerification {
	return &CheckVerification{userRepo: userRepo, codes: codes}
}

func (uc *CheckVerification) Execute(ctx context.Context, phoneNumber, code string) error {
	u, err := uc.userRepo.GetByPhone(ctx, phoneNumber)
	if err != nil {
		return err
	}

	if err := uc.codes.Check(ctx, phoneNumber, code); err != nil {
		return err
	}

	return uc.userRepo.SetVerified(ctx, u.ID)
}
