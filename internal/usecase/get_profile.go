package usecase

import (
	"context"

	"github.com/oral0005/backend-posylka/internal/domain/user"
)

type GetProfile struct {
	userRepo user.Repository
}

func NewGetProfile(userRepo user.Repository) *GetProfile {
	return &GetProfile{userRepo: userRepo}
}

func (uc *GetProfile) Execute(ctx context.Context, userID string) (*user.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}
