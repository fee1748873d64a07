package mail

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/thinkfirst.net/internal/adapter/logging"
	"gitlab.com/thinkfirst.net/internal/config"
)

func TestBuildMessage(t *testing.T) {
	msg, err := buildMessage("noreply@example.com", "admin@example.com", otpSubject, otpBody("482913"))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "admin@example.com")
	assert.Contains(t, raw, "Subject: Your Admin Login OTP")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "482913")
}

func TestBuildMessageRejectsBadAddress(t *testing.T) {
	_, err := buildMessage("noreply@example.com", "not an address", otpSubject, otpBody("1"))
	assert.Error(t, err)
}

func TestSendOTPWithoutHost(t *testing.T) {
	mailer := NewSMTPMailer(&config.MailConfig{Port: 587}, logging.NewNopLogger())
	err := mailer.SendOTP(context.Background(), "admin@example.com", "123456")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSenderFallsBackToUser(t *testing.T) {
	mailer := NewSMTPMailer(&config.MailConfig{Host: "smtp.example.com", Port: 587, User: "bot@example.com"}, logging.NewNopLogger())
	assert.Equal(t, "bot@example.com", mailer.sender())

	mailer.cfg.From = "ThinkFirst <noreply@example.com>"
	assert.Equal(t, "ThinkFirst <noreply@example.com>", mailer.sender())
}

func TestClientUsesImplicitTLSOn465(t *testing.T) {
	mailer := NewSMTPMailer(&config.MailConfig{Host: "smtp.example.com", Port: 465}, logging.NewNopLogger())
	client, err := mailer.client()
	require.NoError(t, err)
	assert.Equal(t, 465, client.ServerPort())

	mailer.cfg.Port = 2525
	client, err = mailer.client()
	require.NoError(t, err)
	assert.Equal(t, 2525, client.ServerPort())
}
