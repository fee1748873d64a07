package auth

import (
	"context"

	"gitlab.com/thinkfirst.net/internal/domain"
)

// IAuthService is the two step admin login: password, then emailed OTP
type IAuthService interface {
	// Login checks the password and sends a one-time password to the admin
	Login(ctx context.Context, email, password string) (*domain.LoginChallenge, error)

	// VerifyOTP consumes the pending OTP and issues tokens
	VerifyOTP(ctx context.Context, email, otp string) (*domain.Admin, *domain.AuthTokens, error)

	// Refresh issues a new access token from a refresh token
	Refresh(ctx context.Context, refreshToken string) (string, error)

	// Authenticate resolves the admin behind an access token
	Authenticate(ctx context.Context, accessToken string) (*domain.Admin, error)

	// ResetPassword sets a new password, creating a superadmin when create is set
	// and no admin has that email. It reports whether an admin was created.
	ResetPassword(ctx context.Context, email, password string, create bool) (bool, error)
}
