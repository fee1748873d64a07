package errs

import "errors"

var InvalidCredentials = errors.New("invalid email or password")

var (
	InternalError         = errors.New("internal error")
	GeneratingToken       = errors.New("error generating token")
	EmailPasswordRequired = errors.New("email and password are required")
	EmailOTPRequired      = errors.New("email and OTP are required")
	OTPExpired            = errors.New("OTP expired or invalid")
	InvalidOTP            = errors.New("invalid OTP")
	SendingOTP            = errors.New("failed to send OTP email")
	Unauthorized          = errors.New("unauthorized")
	InvalidToken          = errors.New("invalid token")
	AdminNotFound         = errors.New("admin not found")
)
