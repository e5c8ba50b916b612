package user

import (
	"context"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	PhoneNumber  string    `json:"phone_number"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Verified     bool      `json:"verified"`
	RatingAvg    float64   `json:"rating_avg"`
	RatingCount  int       `json:"rating_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public is the profile projection attached to post listings and
// notifications. Never carries the password hash.
type Public struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

func (u *User) Public() *Public {
	return &Public{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Surname:     u.Surname,
		PhoneNumber: u.PhoneNumber,
	}
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByPhone(ctx context.Context, phoneNumber string) (*User, error)
	SetVerified(ctx context.Context, id string) error
	// ApplyRating folds one rating into the running average atomically:
	// avg' = (avg*count + rating) / (count+1), count' = count+1.
	ApplyRating(ctx context.Context, id string, rating int) error
}
