package domain

// OTPChallenge is the pending second factor stored between login and verification
type OTPChallenge struct {
	OTP     string `json:"otp"`
	AdminID string `json:"adminId"`
}

// LoginChallenge is returned by a successful password check
type LoginChallenge struct {
	// DevOTP is only set when mail delivery failed in development mode
	DevOTP string
}

// AuthTokens are issued after a successful OTP verification
type AuthTokens struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// AccessClaims are the claims carried by an admin access token
type AccessClaims struct {
	AdminID string
	Email   string
}
