package admin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/thinkfirst.net/internal/adapter/logging"
	"gitlab.com/thinkfirst.net/internal/config"
	"gitlab.com/thinkfirst.net/internal/domain"
	"gitlab.com/thinkfirst.net/internal/handlers"
	"gitlab.com/thinkfirst.net/internal/handlers/admin"
	"gitlab.com/thinkfirst.net/internal/static/errs"
)

var testAdmin = &domain.Admin{ID: "a-1", Name: "Ada", Email: "ada@example.com", Role: domain.RoleSuperAdmin}

type fakeAuth struct {
	devOTP   string
	loginErr error
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*domain.LoginChallenge, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if email == "" || password == "" {
		return nil, errs.EmailPasswordRequired
	}
	if password != "secret" {
		return nil, errs.InvalidCredentials
	}
	return &domain.LoginChallenge{DevOTP: f.devOTP}, nil
}

func (f *fakeAuth) VerifyOTP(_ context.Context, _, otp string) (*domain.Admin, *domain.AuthTokens, error) {
	if otp != "123456" {
		return nil, nil, errs.InvalidOTP
	}
	return testAdmin, &domain.AuthTokens{Token: "access", RefreshToken: "refresh"}, nil
}

func (f *fakeAuth) Refresh(_ context.Context, token string) (string, error) {
	if token != "refresh" {
		return "", errs.InvalidToken
	}
	return "access-2", nil
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (*domain.Admin, error) {
	if token != "access" {
		return nil, errs.InvalidToken
	}
	return testAdmin, nil
}

func (f *fakeAuth) ResetPassword(context.Context, string, string, bool) (bool, error) {
	return false, nil
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Success bool            `json:"success"`
}

func newRouter(svc *fakeAuth, appEnv string) *mux.Router {
	jwtCfg := &config.JwtConfig{ExpiresIn: 15 * time.Minute, RefreshExpireIn: 7 * 24 * time.Hour}
	serverCfg := &config.ServerConfig{AppEnv: appEnv}
	mw := handlers.NewMiddlewareProvider(svc, "", logging.NewNopLogger())

	router := mux.NewRouter()
	admin.NewHandler(svc, jwtCfg, serverCfg, logging.NewNopLogger()).
		RegisterRoutes(router.PathPrefix("/api/v1/admin").Subrouter(), mw)
	return router
}

func send(t *testing.T, router http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLogin(t *testing.T) {
	router := newRouter(&fakeAuth{}, config.EnvProduction)

	rec, env := send(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/admin/login",
		strings.NewReader(`{"email": "ada@example.com", "password": "secret"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OTP sent to your email", env.Message)

	rec, env = send(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/admin/login",
		strings.NewReader(`{"email": "ada@example.com", "password": "wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", env.Message)

	rec, _ = send(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/admin/login",
		strings.NewReader(`{"email": ""}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginDevModeReturnsOTP(t *testing.T) {
	router := newRouter(&fakeAuth{devOTP: "654321"}, config.EnvDevelopment)

	rec, env := send(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/admin/login",
		strings.NewReader(`{"email": "ada@example.com", "password": "secret"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OTP generated (email failed, showing in dev mode)", env.Message)
	assert.JSONEq(t, `{"otp": "654321"}`, string(env.Data))
}

func TestLoginMailFailure(t *testing.T) {
	router := newRouter(&fakeAuth{loginErr: errs.SendingOTP}, config.EnvProduction)

	rec, env := send(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/admin/login",
		strings.NewReader(`{"email": "ada@example.com", "password": "secret"}`)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to send OTP email", env.Message)
}

func TestVerifyOTPSetsCookies(t *testing.T) {
	router := newRouter(&fakeAuth{}, config.EnvProduction)

	rec, env := send(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/admin/verify-otp",
		strings.NewReader(`{"email": "ada@example.com", "otp": "123456"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful", env.Message)
	assert.JSONEq(t, `{"admin": {"id": "a-1", "name": "Ada", "email": "ada@example.com"}}`, string(env.Data))

	access := cookieByName(rec, handlers.AccessCookie)
	require.NotNil(t, access)
	assert.Equal(t, "access", access.Value)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, http.SameSiteStrictMode, access.SameSite)
	assert.Equal(t, 900, access.MaxAge)

	refresh := cookieByName(rec, handlers.RefreshCookie)
	require.NotNil(t, refresh)
	assert.Equal(t, 7*24*3600, refresh.MaxAge)
}

func TestVerifyOTPMismatch(t *testing.T) {
	router := newRouter(&fakeAuth{}, config.EnvDevelopment)

	rec, env := send(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/admin/verify-otp",
		strings.NewReader(`{"email": "ada@example.com", "otp": "000000"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid OTP", env.Message)
	assert.Nil(t, cookieByName(rec, handlers.AccessCookie))
}

func TestRefresh(t *testing.T) {
	router := newRouter(&fakeAuth{}, config.EnvDevelopment)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/refresh", nil)
	req.AddCookie(&http.Cookie{Name: handlers.RefreshCookie, Value: "refresh"})
	rec, _ := send(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	access := cookieByName(rec, handlers.AccessCookie)
	require.NotNil(t, access)
	assert.Equal(t, "access-2", access.Value)
	assert.False(t, access.Secure)

	rec, env := send(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/admin/refresh", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid refresh token", env.Message)
}

func TestCurrentAndLogout(t *testing.T) {
	router := newRouter(&fakeAuth{}, config.EnvDevelopment)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/current", nil)
	req.AddCookie(&http.Cookie{Name: handlers.AccessCookie, Value: "access"})
	rec, env := send(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"admin": {"id": "a-1", "name": "Ada", "email": "ada@example.com", "role": "superadmin"}}`, string(env.Data))

	rec, _ = send(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/admin/current", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/logout", nil)
	req.Header.Set("Authorization", "Bearer access")
	rec, env = send(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logout successful", env.Message)
	cleared := cookieByName(rec, handlers.AccessCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)
}
