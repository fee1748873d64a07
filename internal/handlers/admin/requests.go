package admin

import "gitlab.com/thinkfirst.net/internal/domain"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	OTP string `json:"otp,omitempty"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type AdminResponse struct {
	Admin domain.AdminProfile `json:"admin"`
}
