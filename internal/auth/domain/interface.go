package domain

import "context"

type UserRepository interface {
	Create(ctx context.Context, username, passwordHash string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetIDByUsername(ctx context.Context, username string) (int, error)
	IncrementAttempts(ctx context.Context, userID int) error
	ResetAttempts(ctx context.Context, userID int) error
	SaveDetails(ctx context.Context, details *UserDetails) error
}
