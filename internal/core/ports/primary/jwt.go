package primary

import (
	"context"

	"gitlab.com/thinkfirst.net/internal/domain"
)

type JWTService interface {
	GenerateAccessToken(ctx context.Context, claims domain.AccessClaims) (string, error)
	GenerateRefreshToken(ctx context.Context, adminID string) (string, error)
	VerifyAccessToken(ctx context.Context, token string) (domain.AccessClaims, error)
	VerifyRefreshToken(ctx context.Context, token string) (string, error)
	EncryptPassword(ctx context.Context, password string) (string, error)
	VerifyPassword(ctx context.Context, passwordHash string, pwd string) (bool, error)
}
