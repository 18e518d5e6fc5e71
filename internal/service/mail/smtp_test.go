package mail

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotche/smartnotes/internal/config"
)

func TestNewDialer_SSL(t *testing.T) {
	dialer := newDialer(config.SMTPConfig{
		Host: "smtp.example.com", Port: 465, User: "mailer", Password: "pass",
		UseSSL: true,
	})

	assert.True(t, dialer.SSL)
	require.NotNil(t, dialer.TLSConfig)
	assert.Equal(t, "smtp.example.com", dialer.TLSConfig.ServerName)
}

func TestNewDialer_StartTLS(t *testing.T) {
	dialer := newDialer(config.SMTPConfig{
		Host: "smtp.example.com", Port: 587, User: "mailer", Password: "pass",
		UseTLS: true,
	})

	assert.False(t, dialer.SSL)
	require.NotNil(t, dialer.TLSConfig)
	assert.Equal(t, "smtp.example.com", dialer.TLSConfig.ServerName)
}

func TestNewDialer_Plain(t *testing.T) {
	dialer := newDialer(config.SMTPConfig{
		Host: "smtp.example.com", Port: 25, User: "mailer", Password: "pass",
	})

	assert.False(t, dialer.SSL)
	assert.Nil(t, dialer.TLSConfig)
}

func TestSend_Unconfigured(t *testing.T) {
	sender := NewSMTPSender(config.SMTPConfig{}, zerolog.Nop())

	assert.False(t, sender.Send("ivan@example.com", "subject", "<p>hi</p>", "hi"))
}
