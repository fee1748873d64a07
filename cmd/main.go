package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"gitlab.com/thinkfirst.net/internal/adapter/crypto"
	"gitlab.com/thinkfirst.net/internal/adapter/judge0"
	"gitlab.com/thinkfirst.net/internal/adapter/logging"
	"gitlab.com/thinkfirst.net/internal/adapter/mail"
	"gitlab.com/thinkfirst.net/internal/adapter/openrouter"
	"gitlab.com/thinkfirst.net/internal/adapter/postgres"
	"gitlab.com/thinkfirst.net/internal/adapter/postgres/adminrepository"
	"gitlab.com/thinkfirst.net/internal/adapter/postgres/questionrepository"
	"gitlab.com/thinkfirst.net/internal/adapter/redis/otpstore"
	"gitlab.com/thinkfirst.net/internal/config"
	"gitlab.com/thinkfirst.net/internal/core/services/auth"
	"gitlab.com/thinkfirst.net/internal/core/services/grading"
	"gitlab.com/thinkfirst.net/internal/core/services/mentor"
	"gitlab.com/thinkfirst.net/internal/core/services/question"
	logger2 "gitlab.com/thinkfirst.net/internal/global/logger"
	http2 "gitlab.com/thinkfirst.net/internal/http"
)

// tableOwner is implemented by repositories that can create their own table
type tableOwner interface {
	EnsureTableExists(ctx context.Context) error
}

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sysCfg := config.NewSystemConfig()
	zapLogger := logging.NewZapLogger(sysCfg.ServerConfig.IsDevelopment())
	defer zapLogger.Sync()
	logger2.SetLogger(zapLogger)
	logger := logger2.Logger

	logger.Info("Starting ThinkFirst service", "env", sysCfg.ServerConfig.AppEnv)
	if sysCfg.JwtConfig.Secret == "" {
		logger.Warn("JWT_SECRET is not set, admin login will fail")
	}

	ctxBg := context.Background()
	db, err := postgres.Open(ctxBg, sysCfg.DatabaseConfig)
	if err != nil {
		logger.Error("Failed to set up database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctxBg).Err(); err != nil {
		logger.Warn("Redis is not reachable, admin login will fail", "addr", sysCfg.RedisConfig.Url, "error", err)
	}

	// SECONDARY PORTS
	schema := sysCfg.DatabaseConfig.Schema
	questionRepo := questionrepository.New(db, logger, schema)
	adminPort := adminrepository.New(db, logger, schema)
	if sysCfg.DatabaseConfig.AutoMigrate {
		for _, owner := range []tableOwner{questionRepo, adminPort.(tableOwner)} {
			if err := owner.EnsureTableExists(ctxBg); err != nil {
				logger.Error("Failed to prepare database", "error", err)
				os.Exit(1)
			}
		}
	}
	otpStore := otpstore.New(redisClient, logger)
	mailer := mail.NewSMTPMailer(sysCfg.MailConfig, logger)
	executor := judge0.NewClient(sysCfg.Judge0Config, logger)
	completer := openrouter.NewClient(sysCfg.MentorConfig, logger)

	// primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	// services
	gradingSvc := grading.NewGradingService(executor, questionRepo, logger, sysCfg.GradingConfig.MaxParallelCases)
	questionSvc := question.NewQuestionService(questionRepo, logger)
	authSvc := auth.NewOTPAuthService(adminPort, otpStore, mailer, jwtProvider, logger, sysCfg.OTPConfig, sysCfg.ServerConfig)
	mentorSvc := mentor.NewMentorService(completer, logger)
	serviceProvider := http2.NewServiceProvider(gradingSvc, questionSvc, authSvc, mentorSvc)

	// server
	httpServer := http2.NewServer("thinkfirst", *serviceProvider, sysCfg, logger)
	if err := httpServer.Init(); err != nil {
		logger.Error("Failed to init http server", "error", err)
		os.Exit(1)
	}
	errCh := httpServer.Start(ctxBg)

	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			logger.Error("Http server stopped unexpectedly", "error", err)
		}
	}
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	if err := httpServer.Stop(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("successfully shutdown server")
}

// InitReader loads <env>.env when an environment name is passed as the first argument.
// Without one the process environment is used as is.
func InitReader() {
	if len(os.Args) < 2 {
		return
	}
	environment := os.Args[1]
	if err := godotenv.Load(environment + ".env"); err != nil {
		logger2.Warn("Could not load env file", "file", environment+".env", "error", err)
	}
}
