package otpstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
	"gitlab.com/thinkfirst.net/internal/core/ports/secondary"
	"gitlab.com/thinkfirst.net/internal/domain"
)

const otpKeyPrefix = "otp:"

var _ secondary.OTPStore = (*OTPRepository)(nil)

// OTPRepository keeps pending login challenges in Redis, one key per email
type OTPRepository struct {
	redisClient *redis.Client
	logger      primary.Logger
}

func New(redisClient *redis.Client, logger primary.Logger) *OTPRepository {
	return &OTPRepository{
		redisClient: redisClient,
		logger:      logger,
	}
}

func otpKey(email string) string {
	return otpKeyPrefix + email
}

func (r *OTPRepository) Save(ctx context.Context, email string, challenge domain.OTPChallenge, ttl time.Duration) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal otp challenge: %w", err)
	}
	if err := r.redisClient.Set(ctx, otpKey(email), data, ttl).Err(); err != nil {
		r.logger.Error("Failed to store otp", "email", email, "error", err)
		return fmt.Errorf("failed to store otp: %w", err)
	}
	return nil
}

func (r *OTPRepository) Get(ctx context.Context, email string) (*domain.OTPChallenge, error) {
	data, err := r.redisClient.Get(ctx, otpKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		r.logger.Error("Failed to read otp", "email", email, "error", err)
		return nil, fmt.Errorf("failed to read otp: %w", err)
	}

	var challenge domain.OTPChallenge
	if err := json.Unmarshal(data, &challenge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp challenge: %w", err)
	}
	return &challenge, nil
}

func (r *OTPRepository) Delete(ctx context.Context, email string) error {
	if err := r.redisClient.Del(ctx, otpKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}
	return nil
}
