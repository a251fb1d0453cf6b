package notifications

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/uwcirg/waverify-auth/domain"
)

// SMTPConfig carries outbound mail settings. An empty Host switches the
// service into mock mode: messages are logged instead of delivered, which
// keeps local development working without a mail relay.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// EmailServiceImpl implements domain.NotificationService over SMTP
type EmailServiceImpl struct {
	config SMTPConfig
}

// NewEmailService creates a new email notification service
func NewEmailService(config SMTPConfig) domain.NotificationService {
	return &EmailServiceImpl{config: config}
}

// SendEmail implements domain.NotificationService
func (s *EmailServiceImpl) SendEmail(to, subject, body string) error {
	if s.config.Host == "" {
		log.Printf("MOCK_EMAIL: to=%s subject=%q", to, subject)
		return nil
	}

	from := s.config.From
	if from == "" {
		from = s.config.User
	}

	// RFC 822 message, CRLF between headers and a blank line before the body
	headers := []string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}
	message := strings.Join(headers, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	var auth smtp.Auth
	if s.config.User != "" {
		auth = smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	}

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
