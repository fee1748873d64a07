package config

import "time"

type JwtConfig struct {
	Secret          string
	ExpiresIn       time.Duration
	RefreshSecret   string
	RefreshExpireIn time.Duration
}

func NewJwtConfig() *JwtConfig {
	return &JwtConfig{
		Secret:          getEnv("JWT_SECRET", ""),
		ExpiresIn:       getDurationEnv("JWT_EXPIRES_IN", 15*time.Minute),
		RefreshSecret:   getEnv("JWT_REFRESH_SECRET", ""),
		RefreshExpireIn: getDurationEnv("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}
}
