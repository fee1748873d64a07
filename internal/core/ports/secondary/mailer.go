package secondary

import "context"

type Mailer interface {
	SendOTP(ctx context.Context, to string, otp string) error
}
