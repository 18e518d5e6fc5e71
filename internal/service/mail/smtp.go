package mail

import (
	"crypto/tls"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/kotche/smartnotes/internal/config"
)

type SMTPSender struct {
	cfg    config.SMTPConfig
	logger zerolog.Logger
}

func NewSMTPSender(cfg config.SMTPConfig, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		logger: logger.With().Str("component", "smtp").Logger(),
	}
}

// Send delivers one message over SMTP. It returns false without retrying
// when the transport is unconfigured or the server rejects the message.
func (s *SMTPSender) Send(to, subject, htmlBody, textBody string) bool {
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.User == "" || s.cfg.Password == "" {
		s.logger.Warn().Msg("smtp is not configured, skipping send")
		return false
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.User
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	if textBody != "" {
		msg.SetBody("text/plain", textBody)
		msg.AddAlternative("text/html", htmlBody)
	} else {
		msg.SetBody("text/html", htmlBody)
	}

	if err := newDialer(s.cfg).DialAndSend(msg); err != nil {
		s.logger.Error().Err(err).Str("to", to).Msg("failed to send email")
		return false
	}

	s.logger.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return true
}

// newDialer maps the transport settings onto gomail. UseSSL selects
// implicit TLS (465-style endpoints); UseTLS pins certificate
// verification to the configured host for the STARTTLS handshake.
func newDialer(cfg config.SMTPConfig) *gomail.Dialer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	if cfg.UseSSL {
		dialer.SSL = true
	}
	if cfg.UseSSL || cfg.UseTLS {
		dialer.TLSConfig = &tls.Config{ServerName: cfg.Host}
	}
	return dialer
}
