package config

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type ServerConfig struct {
	Port       int
	CorsOrigin string
	AppEnv     string
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:       getIntEnv("PORT", 8000),
		CorsOrigin: getEnv("CORS_ORIGIN", ""),
		AppEnv:     getEnv("APP_ENV", EnvDevelopment),
	}
}

func (c *ServerConfig) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

func (c *ServerConfig) IsProduction() bool {
	return c.AppEnv == EnvProduction
}
