package crypto

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/thinkfirst.net/internal/config"
	"gitlab.com/thinkfirst.net/internal/domain"
	"gitlab.com/thinkfirst.net/internal/static/errs"
)

func newTestService() *JWTServiceImpl {
	return NewJWTService(&config.JwtConfig{
		Secret:          "access-secret",
		ExpiresIn:       15 * time.Minute,
		RefreshSecret:   "refresh-secret",
		RefreshExpireIn: 7 * 24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	token, err := svc.GenerateAccessToken(ctx, domain.AccessClaims{AdminID: "a-1", Email: "admin@example.com"})
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessClaims{AdminID: "a-1", Email: "admin@example.com"}, claims)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	refresh, err := svc.GenerateRefreshToken(ctx, "a-1")
	require.NoError(t, err)

	id, err := svc.VerifyRefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.Equal(t, "a-1", id)

	_, err = svc.VerifyAccessToken(ctx, refresh)
	assert.ErrorIs(t, err, errs.InvalidToken)
}

func TestAccessTokenExpires(t *testing.T) {
	svc := newTestService()
	issued := time.Now()
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateAccessToken(context.Background(), domain.AccessClaims{AdminID: "a-1"})
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = svc.VerifyAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, errs.InvalidToken)
}

func TestTokenSignedWithOtherSecret(t *testing.T) {
	other := NewJWTService(&config.JwtConfig{Secret: "someone-else", ExpiresIn: time.Minute})
	token, err := other.GenerateAccessToken(context.Background(), domain.AccessClaims{AdminID: "a-1"})
	require.NoError(t, err)

	_, err = newTestService().VerifyAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, errs.InvalidToken)
}

func TestGenerateWithoutSecret(t *testing.T) {
	svc := NewJWTService(&config.JwtConfig{ExpiresIn: time.Minute})
	_, err := svc.GenerateAccessToken(context.Background(), domain.AccessClaims{AdminID: "a-1"})
	assert.ErrorIs(t, err, errs.GeneratingToken)
}

func TestPasswords(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	hash, err := svc.EncryptPassword(ctx, "s3cret!")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)

	ok, err := svc.VerifyPassword(ctx, hash, "s3cret!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyPassword(ctx, hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}
