package config

import "time"

type MentorConfig struct {
	BaseURL     string
	ApiKey      string
	Model       string
	Temperature float64
	MaxTokens   int

	// StreamTimeout bounds one mentor stream including the write side
	StreamTimeout time.Duration
}

func NewMentorConfig() *MentorConfig {
	return &MentorConfig{
		BaseURL:       getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1/chat/completions"),
		ApiKey:        getEnv("OPENROUTER_API_KEY", ""),
		Model:         getEnv("DEEPSEEK_MODEL", "deepseek/deepseek-chat"),
		Temperature:   getFloatEnv("MENTOR_TEMPERATURE", 0.2),
		MaxTokens:     getIntEnv("MENTOR_MAX_TOKENS", 120),
		StreamTimeout: time.Duration(getIntEnv("MENTOR_STREAM_TIMEOUT_SEC", 120)) * time.Second,
	}
}
