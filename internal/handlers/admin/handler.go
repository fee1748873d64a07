package admin

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/thinkfirst.net/internal/config"
	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
	"gitlab.com/thinkfirst.net/internal/core/services/auth"
	"gitlab.com/thinkfirst.net/internal/handlers"
	"gitlab.com/thinkfirst.net/internal/handlers/response"
	"gitlab.com/thinkfirst.net/internal/static/errs"
)

// messages are the client facing texts for auth errors
var messages = []struct {
	err     error
	message string
	status  int
}{
	{errs.EmailPasswordRequired, "Email and password are required", http.StatusBadRequest},
	{errs.InvalidCredentials, "Invalid email or password", http.StatusUnauthorized},
	{errs.EmailOTPRequired, "Email and OTP are required", http.StatusBadRequest},
	{errs.OTPExpired, "OTP expired or invalid", http.StatusBadRequest},
	{errs.InvalidOTP, "Invalid OTP", http.StatusBadRequest},
	{errs.SendingOTP, "Failed to send OTP email", http.StatusInternalServerError},
	{errs.AdminNotFound, "Admin not found", http.StatusNotFound},
}

type Handler struct {
	authService auth.IAuthService
	jwtConfig   *config.JwtConfig
	secure      bool
	logger      primary.Logger
}

func NewHandler(authService auth.IAuthService, jwtConfig *config.JwtConfig, serverConfig *config.ServerConfig, logger primary.Logger) *Handler {
	return &Handler{
		authService: authService,
		jwtConfig:   jwtConfig,
		secure:      serverConfig.IsProduction(),
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	router.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	router.HandleFunc("/verify-otp", h.VerifyOTP).Methods(http.MethodPost)
	router.HandleFunc("/refresh", h.Refresh).Methods(http.MethodPost)
	router.Handle("/logout", mw.RequireAdminFunc(h.Logout)).Methods(http.MethodPost)
	router.Handle("/current", mw.RequireAdminFunc(h.Current)).Methods(http.MethodGet)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	challenge, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, "Admin login failed", err)
		return
	}
	if challenge.DevOTP != "" {
		response.WriteSuccess(w, http.StatusOK, LoginResponse{OTP: challenge.DevOTP},
			"OTP generated (email failed, showing in dev mode)")
		return
	}
	response.WriteSuccess(w, http.StatusOK, nil, "OTP sent to your email")
}

func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	admin, tokens, err := h.authService.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		h.writeAuthError(w, "OTP verification failed", err)
		return
	}

	h.setCookie(w, handlers.AccessCookie, tokens.Token, h.jwtConfig.ExpiresIn)
	h.setCookie(w, handlers.RefreshCookie, tokens.RefreshToken, h.jwtConfig.RefreshExpireIn)

	profile := admin.Profile()
	profile.Role = ""
	response.WriteSuccess(w, http.StatusOK, AdminResponse{Admin: profile}, "Login successful")
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var refreshToken string
	if cookie, err := r.Cookie(handlers.RefreshCookie); err == nil {
		refreshToken = cookie.Value
	}

	access, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		if response.StatusFor(err) == http.StatusInternalServerError {
			h.logger.Error("Token refresh failed", "error", err)
			response.FromError(w, err)
			return
		}
		handlers.ResponseError(w, "Invalid refresh token", http.StatusUnauthorized)
		return
	}

	h.setCookie(w, handlers.AccessCookie, access, h.jwtConfig.ExpiresIn)
	response.WriteSuccess(w, http.StatusOK, nil, "Token refreshed")
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setCookie(w, handlers.AccessCookie, "", -1)
	h.setCookie(w, handlers.RefreshCookie, "", -1)
	response.WriteSuccess(w, http.StatusOK, nil, "Logout successful")
}

func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	admin, ok := handlers.AdminFromContext(r.Context())
	if !ok {
		handlers.ResponseError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	response.WriteSuccess(w, http.StatusOK, AdminResponse{Admin: admin.Profile()}, "")
}

// setCookie writes an httpOnly session cookie. A negative maxAge deletes it.
func (h *Handler) setCookie(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	}
	if maxAge < 0 {
		cookie.MaxAge = -1
	} else {
		cookie.MaxAge = int(maxAge.Seconds())
	}
	http.SetCookie(w, cookie)
}

func (h *Handler) writeAuthError(w http.ResponseWriter, msg string, err error) {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			handlers.ResponseError(w, m.message, m.status)
			return
		}
	}
	h.logger.Error(msg, "error", err)
	response.FromError(w, err)
}
