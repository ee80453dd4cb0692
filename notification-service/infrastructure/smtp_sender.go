package infrastructure

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SMTPConfig holds the SMTP connection settings
type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Password string
}

// SMTPSender sends notifications as plain-text email over SMTP
type SMTPSender struct {
	config SMTPConfig
	logger *zap.Logger
}

// NewSMTPSender creates a new SMTPSender
func NewSMTPSender(config SMTPConfig, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{
		config: config,
		logger: logger,
	}
}

// Send delivers a single email to the recipient
func (s *SMTPSender) Send(ctx context.Context, recipient, subject, body string) error {
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		s.config.From, recipient, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)

	var auth smtp.Auth
	if s.config.Password != "" {
		auth = smtp.PlainAuth("", s.config.From, s.config.Password, s.config.Host)
	}

	if err := smtp.SendMail(addr, auth, s.config.From, []string{recipient}, msg); err != nil {
		s.logger.Error("failed to send email",
			zap.String("recipient", recipient),
			zap.String("subject", subject),
			zap.Error(err))
		return errors.Wrap(err, "failed to send mail")
	}

	s.logger.Debug("email sent",
		zap.String("recipient", recipient),
		zap.String("subject", subject))

	return nil
}
