package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/oral0005/backend-posylka/internal/apperr"
	"github.com/oral0005/backend-posylka/internal/auth"
	"github.com/oral0005/backend-posylka/internal/domain/user"
)

type Login struct {
	userRepo user.Repository
	tokens   *auth.TokenManager
}

func NewLogin(userRepo user.Repository, tokens *auth.TokenManager) *Login {
	return &Login{userRepo: userRepo, tokens: tokens}
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *user.Public `json:"user"`
}

// Execute checks credentials and issues a bearer token. Unknown username
// and wrong password report the same error, so the endpoint does not
// leak which usernames exist.
func (uc *Login) Execute(ctx context.Context, username, password string) (*LoginResult, error) {
	invalid := fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)

	u, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, invalid
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, invalid
	}

	token, err := uc.tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{Token: token, User: u.Public()}, nil
}
