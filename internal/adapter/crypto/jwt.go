package crypto

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/thinkfirst.net/internal/config"
	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
	"gitlab.com/thinkfirst.net/internal/domain"
	"gitlab.com/thinkfirst.net/internal/static/errs"
)

var _ primary.JWTService = (*JWTServiceImpl)(nil)

// PasswordCost is the bcrypt cost used for admin passwords
const PasswordCost = 12

const (
	claimID    = "id"
	claimEmail = "email"
	claimType  = "typ"

	typeAccess  = "access"
	typeRefresh = "refresh"
)

type JWTServiceImpl struct {
	HMACSecretKey     string
	RefreshSecretKey  string
	AccessExpiration  time.Duration
	RefreshExpiration time.Duration
	method            jwt.SigningMethod
	now               func() time.Time
}

func NewJWTService(jwtConfig *config.JwtConfig) *JWTServiceImpl {
	refreshSecret := jwtConfig.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = jwtConfig.Secret
	}
	return &JWTServiceImpl{
		HMACSecretKey:     jwtConfig.Secret,
		RefreshSecretKey:  refreshSecret,
		AccessExpiration:  jwtConfig.ExpiresIn,
		RefreshExpiration: jwtConfig.RefreshExpireIn,
		method:            jwt.SigningMethodHS256,
		now:               time.Now,
	}
}

func (J *JWTServiceImpl) GenerateAccessToken(ctx context.Context, claims domain.AccessClaims) (string, error) {
	return J.generateTokenHMAC(J.HMACSecretKey, J.AccessExpiration, jwt.MapClaims{
		claimID:    claims.AdminID,
		claimEmail: claims.Email,
		claimType:  typeAccess,
	})
}

func (J *JWTServiceImpl) GenerateRefreshToken(ctx context.Context, adminID string) (string, error) {
	return J.generateTokenHMAC(J.RefreshSecretKey, J.RefreshExpiration, jwt.MapClaims{
		claimID:   adminID,
		claimType: typeRefresh,
		"jti":     uuid.NewString(),
	})
}

func (J *JWTServiceImpl) VerifyAccessToken(ctx context.Context, token string) (domain.AccessClaims, error) {
	claims, err := J.verifyTokenHMAC(J.HMACSecretKey, token, typeAccess)
	if err != nil {
		return domain.AccessClaims{}, err
	}
	email, _ := claims[claimEmail].(string)
	return domain.AccessClaims{
		AdminID: claims[claimID].(string),
		Email:   email,
	}, nil
}

func (J *JWTServiceImpl) VerifyRefreshToken(ctx context.Context, token string) (string, error) {
	claims, err := J.verifyTokenHMAC(J.RefreshSecretKey, token, typeRefresh)
	if err != nil {
		return "", err
	}
	return claims[claimID].(string), nil
}

func (J *JWTServiceImpl) generateTokenHMAC(secret string, ttl time.Duration, claims jwt.MapClaims) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("%w: signing secret is not configured", errs.GeneratingToken)
	}
	now := J.now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(ttl).Unix()

	tok := jwt.NewWithClaims(J.method, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.GeneratingToken, err)
	}
	return signed, nil
}

func (J *JWTServiceImpl) verifyTokenHMAC(secret string, token string, wantType string) (jwt.MapClaims, error) {
	parsedToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(J.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.InvalidToken, err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, errs.InvalidToken
	}
	if typ, _ := claims[claimType].(string); typ != wantType {
		return nil, fmt.Errorf("%w: not an %s token", errs.InvalidToken, wantType)
	}
	if id, _ := claims[claimID].(string); id == "" {
		return nil, fmt.Errorf("%w: missing subject", errs.InvalidToken)
	}
	return claims, nil
}

// VerifyPassword reports false without an error when the password does not match
func (*JWTServiceImpl) VerifyPassword(ctx context.Context, passwordHash string, pwd string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(pwd))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (*JWTServiceImpl) EncryptPassword(ctx context.Context, password string) (string, error) {
	pwd, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
