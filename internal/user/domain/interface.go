package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context, limit, offset int) ([]*User, error)
	Delete(ctx context.Context, id string) error
	Activity(ctx context.Context, start, end time.Time) ([]ActivityPoint, error)
	Stats(ctx context.Context) (*UserStats, error)
}

// TokenDenylist records access tokens invalidated by logout until they expire
// on their own.
type TokenDenylist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
