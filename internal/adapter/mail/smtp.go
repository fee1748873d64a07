package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"gitlab.com/thinkfirst.net/internal/config"
	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
	"gitlab.com/thinkfirst.net/internal/core/ports/secondary"
)

const (
	otpSubject  = "Your Admin Login OTP"
	implicitTLS = 465
	dialTimeout = 10 * time.Second
)

var ErrNotConfigured = errors.New("mail server is not configured")

var _ secondary.Mailer = (*SMTPMailer)(nil)

// SMTPMailer delivers one-time passwords over SMTP. Port 465 uses implicit TLS,
// any other port upgrades with STARTTLS when the server offers it.
type SMTPMailer struct {
	cfg    *config.MailConfig
	logger primary.Logger
}

func NewSMTPMailer(cfg *config.MailConfig, logger primary.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		logger: logger,
	}
}

func (m *SMTPMailer) SendOTP(ctx context.Context, to string, otp string) error {
	if m.cfg.Host == "" {
		return ErrNotConfigured
	}

	msg, err := buildMessage(m.sender(), to, otpSubject, otpBody(otp))
	if err != nil {
		return fmt.Errorf("failed to build otp email: %w", err)
	}
	client, err := m.client()
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.Error("Failed to send otp email", "to", to, "error", err)
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	m.logger.Info("OTP email sent", "to", to)
	return nil
}

func (m *SMTPMailer) sender() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return m.cfg.User
}

func (m *SMTPMailer) client() (*gomail.Client, error) {
	opts := []gomail.Option{gomail.WithTimeout(dialTimeout)}
	if m.cfg.Port == implicitTLS {
		opts = append(opts, gomail.WithSSLPort(false))
	} else {
		opts = append(opts, gomail.WithPort(m.cfg.Port), gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	if m.cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.User),
			gomail.WithPassword(m.cfg.Password))
	}
	return gomail.NewClient(m.cfg.Host, opts...)
}

func otpBody(otp string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif;">
<h2>Admin Login Verification</h2>
<p>Your one-time password is:</p>
<p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">%s</p>
<p>This code expires in 5 minutes. If you did not try to log in, ignore this email.</p>
</div>`, otp)
}

func buildMessage(from, to, subject, htmlBody string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, err
	}
	if err := msg.To(to); err != nil {
		return nil, err
	}
	msg.Subject(subject)
	msg.SetDate()
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)
	return msg, nil
}
