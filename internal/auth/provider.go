package auth

import (
	"context"

	"github.com/paperstack/paperstack/internal/config"
)

// Claims are the identity fields carried by an access token
type Claims struct {
	UserID string
	Email  string
}

type Provider interface {
	HashPassword(password string) (string, error)
	ComparePassword(hash, password string) error
	GenerateToken(ctx context.Context, userID, email string) (string, error)
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

func NewProvider(cfg *config.Configuration) Provider {
	return NewJWTAuth(cfg)
}
