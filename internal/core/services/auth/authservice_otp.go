package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/thinkfirst.net/internal/config"
	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
	"gitlab.com/thinkfirst.net/internal/core/ports/secondary"
	"gitlab.com/thinkfirst.net/internal/domain"
	"gitlab.com/thinkfirst.net/internal/static/errs"
)

var _ IAuthService = &otpAuthService{}

const defaultAdminName = "Admin User"

type otpAuthService struct {
	adminPort   secondary.AdminPort
	otpStore    secondary.OTPStore
	mailer      secondary.Mailer
	jwtProvider primary.JWTService
	logger      primary.Logger
	otpTTL      time.Duration
	otpLength   int
	devMode     bool
}

func NewOTPAuthService(
	adminPort secondary.AdminPort,
	otpStore secondary.OTPStore,
	mailer secondary.Mailer,
	jwtProvider primary.JWTService,
	logger primary.Logger,
	otpConfig *config.OTPConfig,
	serverConfig *config.ServerConfig,
) IAuthService {
	length := otpConfig.Length
	if length < 4 {
		length = 6
	}
	return &otpAuthService{
		adminPort:   adminPort,
		otpStore:    otpStore,
		mailer:      mailer,
		jwtProvider: jwtProvider,
		logger:      logger,
		otpTTL:      otpConfig.TTL,
		otpLength:   length,
		devMode:     serverConfig.IsDevelopment(),
	}
}

func (s *otpAuthService) Login(ctx context.Context, email, password string) (*domain.LoginChallenge, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errs.EmailPasswordRequired
	}

	admin, err := s.adminPort.GetByEmail(ctx, email)
	if err != nil {
		return nil, errs.InternalError
	}
	if admin == nil {
		return nil, errs.InvalidCredentials
	}
	ok, err := s.jwtProvider.VerifyPassword(ctx, admin.PasswordHash, password)
	if err != nil || !ok {
		return nil, errs.InvalidCredentials
	}

	otp, err := generateOTP(s.otpLength)
	if err != nil {
		s.logger.Error("Failed to generate otp", "error", err)
		return nil, errs.InternalError
	}
	challenge := domain.OTPChallenge{OTP: otp, AdminID: admin.ID}
	if err := s.otpStore.Save(ctx, email, challenge, s.otpTTL); err != nil {
		return nil, errs.InternalError
	}

	if err := s.mailer.SendOTP(ctx, email, otp); err != nil {
		if s.devMode {
			s.logger.Warn("OTP email failed, returning otp in development mode", "email", email, "error", err)
			return &domain.LoginChallenge{DevOTP: otp}, nil
		}
		return nil, errs.SendingOTP
	}
	return &domain.LoginChallenge{}, nil
}

func (s *otpAuthService) VerifyOTP(ctx context.Context, email, otp string) (*domain.Admin, *domain.AuthTokens, error) {
	email = strings.TrimSpace(email)
	otp = strings.TrimSpace(otp)
	if email == "" || otp == "" {
		return nil, nil, errs.EmailOTPRequired
	}

	challenge, err := s.otpStore.Get(ctx, email)
	if err != nil {
		return nil, nil, errs.InternalError
	}
	if challenge == nil {
		return nil, nil, errs.OTPExpired
	}
	if subtle.ConstantTimeCompare([]byte(challenge.OTP), []byte(otp)) != 1 {
		return nil, nil, errs.InvalidOTP
	}
	if err := s.otpStore.Delete(ctx, email); err != nil {
		s.logger.Warn("Failed to delete used otp", "email", email, "error", err)
	}

	admin, err := s.adminPort.GetByID(ctx, challenge.AdminID)
	if err != nil {
		return nil, nil, errs.InternalError
	}
	if admin == nil {
		return nil, nil, errs.AdminNotFound
	}

	access, err := s.jwtProvider.GenerateAccessToken(ctx, domain.AccessClaims{AdminID: admin.ID, Email: admin.Email})
	if err != nil {
		s.logger.Error("Failed to generate access token", "error", err)
		return nil, nil, errs.GeneratingToken
	}
	refresh, err := s.jwtProvider.GenerateRefreshToken(ctx, admin.ID)
	if err != nil {
		s.logger.Error("Failed to generate refresh token", "error", err)
		return nil, nil, errs.GeneratingToken
	}

	s.logger.Info("Admin logged in", "adminId", admin.ID)
	return admin, &domain.AuthTokens{Token: access, RefreshToken: refresh}, nil
}

func (s *otpAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", errs.Unauthorized
	}
	adminID, err := s.jwtProvider.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", errs.InvalidToken
	}
	admin, err := s.adminPort.GetByID(ctx, adminID)
	if err != nil {
		return "", errs.InternalError
	}
	if admin == nil {
		return "", errs.AdminNotFound
	}
	access, err := s.jwtProvider.GenerateAccessToken(ctx, domain.AccessClaims{AdminID: admin.ID, Email: admin.Email})
	if err != nil {
		return "", errs.GeneratingToken
	}
	return access, nil
}

func (s *otpAuthService) Authenticate(ctx context.Context, accessToken string) (*domain.Admin, error) {
	if accessToken == "" {
		return nil, errs.Unauthorized
	}
	claims, err := s.jwtProvider.VerifyAccessToken(ctx, accessToken)
	if err != nil {
		return nil, errs.InvalidToken
	}
	admin, err := s.adminPort.GetByID(ctx, claims.AdminID)
	if err != nil {
		return nil, errs.InternalError
	}
	if admin == nil {
		return nil, errs.AdminNotFound
	}
	return admin, nil
}

func (s *otpAuthService) ResetPassword(ctx context.Context, email, password string, create bool) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, errs.EmailPasswordRequired
	}
	hash, err := s.jwtProvider.EncryptPassword(ctx, password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	admin, err := s.adminPort.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if admin != nil {
		return false, s.adminPort.UpdatePassword(ctx, email, hash)
	}
	if !create {
		return false, errs.AdminNotFound
	}

	err = s.adminPort.Create(ctx, &domain.Admin{
		ID:           uuid.NewString(),
		Name:         defaultAdminName,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// generateOTP returns length random decimal digits without a leading zero
func generateOTP(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		limit, offset := int64(10), int64(0)
		if i == 0 {
			limit, offset = 9, 1
		}
		n, err := rand.Int(rand.Reader, big.NewInt(limit))
		if err != nil {
			return "", errors.Join(errs.InternalError, err)
		}
		b.WriteByte(byte('0' + n.Int64() + offset))
	}
	return b.String(), nil
}
