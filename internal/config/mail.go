package config

import "time"

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewMailConfig() *MailConfig {
	return &MailConfig{
		Host:     getEnv("EMAIL_HOST", ""),
		Port:     getIntEnv("EMAIL_PORT", 587),
		User:     getEnv("EMAIL_USER", ""),
		Password: getEnv("EMAIL_PASSWORD", ""),
		From:     getEnv("EMAIL_FROM", ""),
	}
}

type OTPConfig struct {
	TTL    time.Duration
	Length int
}

func NewOTPConfig() *OTPConfig {
	return &OTPConfig{
		TTL:    time.Duration(getIntEnv("OTP_TTL_SEC", 300)) * time.Second,
		Length: getIntEnv("OTP_LENGTH", 6),
	}
}
