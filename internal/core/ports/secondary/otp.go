package secondary

import (
	"context"
	"time"

	"gitlab.com/thinkfirst.net/internal/domain"
)

type OTPStore interface {
	// Save stores the challenge for email, replacing any previous one
	Save(ctx context.Context, email string, challenge domain.OTPChallenge, ttl time.Duration) error

	// Get returns nil when no challenge is pending for email
	Get(ctx context.Context, email string) (*domain.OTPChallenge, error)

	Delete(ctx context.Context, email string) error
}
