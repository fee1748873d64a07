package config

type AppConfig struct {
	ServerConfig   *ServerConfig
	DatabaseConfig *DatabaseConfig
	RedisConfig    *RedisConfig
	JwtConfig      *JwtConfig
	Judge0Config   *Judge0Config
	GradingConfig  *GradingConfig
	MentorConfig   *MentorConfig
	MailConfig     *MailConfig
	OTPConfig      *OTPConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		ServerConfig:   NewServerConfig(),
		DatabaseConfig: NewDatabaseConfig(),
		RedisConfig:    NewRedisConfig(),
		JwtConfig:      NewJwtConfig(),
		Judge0Config:   NewJudge0Config(),
		GradingConfig:  NewGradingConfig(),
		MentorConfig:   NewMentorConfig(),
		MailConfig:     NewMailConfig(),
		OTPConfig:      NewOTPConfig(),
	}
}
