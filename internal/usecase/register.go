package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/oral0005/backend-posylka/internal/apperr"
	"github.com/oral0005/backend-posylka/internal/domain/user"
)

type Register struct {
	userRepo user.Repository
}

func NewRegister(userRepo user.Repository) *Register {
	return &Register{userRepo: userRepo}
}

type RegisterParams struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
}

func (uc *Register) Execute(ctx context.Context, params RegisterParams) (*user.User, error) {
	params.Username = strings.TrimSpace(params.Username)
	params.PhoneNumber = strings.TrimSpace(params.PhoneNumber)
	if params.Username == "" || params.Password == "" || params.PhoneNumber == "" ||
		params.Name == "" || params.Surname == "" {
		return nil, fmt.Errorf("%w: all fields are required", apperr.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.New().String(),
		Username:     params.Username,
		PasswordHash: string(hash),
		PhoneNumber:  params.PhoneNumber,
		Name:         params.Name,
		Surname:      params.Surname,
		CreatedAt:    time.Now(),
	}

	// Uniqueness of username and phone is enforced by the store; a
	// duplicate surfaces as a conflict.
	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}
