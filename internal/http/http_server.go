package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/thinkfirst.net/internal/config"
	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
	"gitlab.com/thinkfirst.net/internal/core/services/auth"
	"gitlab.com/thinkfirst.net/internal/core/services/grading"
	"gitlab.com/thinkfirst.net/internal/core/services/mentor"
	"gitlab.com/thinkfirst.net/internal/core/services/question"
	"gitlab.com/thinkfirst.net/internal/handlers"
	"gitlab.com/thinkfirst.net/internal/handlers/admin"
	"gitlab.com/thinkfirst.net/internal/handlers/ai"
	"gitlab.com/thinkfirst.net/internal/handlers/questions"
	"gitlab.com/thinkfirst.net/internal/handlers/runcode"
)

type ServiceProvider struct {
	gradingService  grading.IGradingService
	questionService question.IQuestionService
	authService     auth.IAuthService
	mentorService   mentor.IMentorService
}

func NewServiceProvider(
	gradingService grading.IGradingService,
	questionService question.IQuestionService,
	authService auth.IAuthService,
	mentorService mentor.IMentorService,
) *ServiceProvider {
	return &ServiceProvider{
		gradingService:  gradingService,
		questionService: questionService,
		authService:     authService,
		mentorService:   mentorService,
	}
}

type Server struct {
	handler         http.Handler
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	config          *config.AppConfig
	logger          primary.Logger
}

func NewServer(serviceName string, serviceProvider ServiceProvider, cfg *config.AppConfig, logger primary.Logger) *Server {
	return &Server{
		Port:            cfg.ServerConfig.Port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		config:          cfg,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	sp := s.ServiceProvider
	mw := handlers.NewMiddlewareProvider(sp.authService, s.config.ServerConfig.CorsOrigin, s.logger)

	r := mux.NewRouter()
	r.HandleFunc("/health", Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	runcode.NewHandler(sp.gradingService, s.config.GradingConfig, s.logger).
		RegisterRoutes(api.PathPrefix("/runcode").Subrouter())
	questionRouter := api.PathPrefix("/questions").Subrouter()
	questionRouter.Use(handlers.Compress)
	questions.NewHandler(sp.questionService, s.logger).RegisterRoutes(questionRouter, mw)
	admin.NewHandler(sp.authService, s.config.JwtConfig, s.config.ServerConfig, s.logger).
		RegisterRoutes(api.PathPrefix("/admin").Subrouter(), mw)
	ai.NewHandler(sp.mentorService, s.config.MentorConfig, s.logger).
		RegisterRoutes(api.PathPrefix("/ai").Subrouter())

	// CORS wraps the router so preflights are answered before route matching
	s.handler = mw.RequestLogger(mw.CORS(handlers.LimitBody(r)))
	return nil
}

// Handler returns the fully wrapped router, nil before Init
func (s *Server) Handler() http.Handler {
	return s.handler
}

func Health(w http.ResponseWriter, _ *http.Request) {
	handlers.ResponseWithJson(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Server is running",
	})
}

// Start serves in the background. errCh receives the error if the listener dies.
func (s *Server) Start(ctx context.Context) <-chan error {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
