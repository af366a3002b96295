// File: /services/email_service.go
package services

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"localevents-api/config"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
	logger *zap.Logger
}

func NewEmailService(cfg *config.Config, logger *zap.Logger) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
		logger: logger,
	}
}

// SendWelcomeEmail greets a new account. Callers fire this in a goroutine;
// a dead SMTP server must never fail a sign-up.
func (es *EmailService) SendWelcomeEmail(email, username string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to LocalEvents")
	m.SetBody("text/html", fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Your account is ready. Start browsing events near you, or create your own.</p>
		<p>— The LocalEvents team</p>
	`, username))

	if err := es.dialer.DialAndSend(m); err != nil {
		es.logger.Warn("failed to send welcome email",
			zap.String("email", email),
			zap.Error(err),
		)
		return err
	}
	return nil
}
