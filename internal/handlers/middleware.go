package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/klauspost/compress/gzhttp"

	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
	"gitlab.com/thinkfirst.net/internal/core/services/auth"
	"gitlab.com/thinkfirst.net/internal/domain"
	"gitlab.com/thinkfirst.net/internal/handlers/response"
)

// Cookie names used for admin sessions
const (
	AccessCookie  = "adminToken"
	RefreshCookie = "adminRefreshToken"
)

type contextKey string

const adminContextKey contextKey = "admin"

type MiddlewareProvider struct {
	authService    auth.IAuthService
	allowedOrigins []string
	logger         primary.Logger
}

// NewMiddlewareProvider takes a comma separated CORS origin list. An empty list
// reflects the caller's origin.
func NewMiddlewareProvider(authService auth.IAuthService, corsOrigin string, logger primary.Logger) *MiddlewareProvider {
	var origins []string
	for _, o := range strings.Split(corsOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, strings.TrimSuffix(o, "/"))
		}
	}
	return &MiddlewareProvider{
		authService:    authService,
		allowedOrigins: origins,
		logger:         logger,
	}
}

// AdminFromContext returns the admin placed in the context by RequireAdmin
func AdminFromContext(ctx context.Context) (*domain.Admin, bool) {
	admin, ok := ctx.Value(adminContextKey).(*domain.Admin)
	return admin, ok && admin != nil
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(AccessCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// RequireAdmin rejects requests without a valid admin access token
func (m *MiddlewareProvider) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			ResponseError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		admin, err := m.authService.Authenticate(r.Context(), token)
		if err != nil {
			status := response.StatusFor(err)
			if status == http.StatusNotFound {
				status = http.StatusUnauthorized
			}
			if status == http.StatusInternalServerError {
				m.logger.Error("Failed to authenticate admin", "error", err)
			}
			ResponseError(w, "Invalid token", status)
			return
		}

		ctx := context.WithValue(r.Context(), adminContextKey, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *MiddlewareProvider) RequireAdminFunc(fn http.HandlerFunc) http.Handler {
	return m.RequireAdmin(fn)
}

func (m *MiddlewareProvider) originAllowed(origin string) bool {
	if len(m.allowedOrigins) == 0 {
		return true
	}
	for _, allowed := range m.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// CORS allows credentialed requests from the configured origins. Preflights
// from any other origin are refused with 403.
func (m *MiddlewareProvider) CORS(next http.Handler) http.Handler {
	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOriginValidator(func(origin string) bool {
			return origin != "" && m.originAllowed(origin)
		}),
		gorillahandlers.AllowCredentials(),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillahandlers.MaxAge(600),
		gorillahandlers.OptionStatusCode(http.StatusNoContent),
	)(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}
		if r.Method == http.MethodOptions && !m.originAllowed(origin) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Add("Vary", "Origin")
		cors.ServeHTTP(w, r)
	})
}

// LimitBody caps request bodies at MaxBodyBytes
func LimitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

// Compress gzips responses for clients that accept it. Not for streaming routes.
func Compress(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses working behind the recorder
func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// RequestLogger logs one line per request
func (m *MiddlewareProvider) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String())
	})
}
