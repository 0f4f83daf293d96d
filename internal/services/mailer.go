package services

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig carries per-request SMTP credentials for the email relay. The
// panel keeps these client-side and posts them along with each send.
type SMTPConfig struct {
	Host        string `json:"smtpHost"`
	Port        int    `json:"smtpPort"`
	User        string `json:"smtpUser"`
	Password    string `json:"smtpPass"`
	SenderName  string `json:"senderName"`
	SenderEmail string `json:"senderEmail"`
}

// MailerService relays invoice and reminder emails over SMTP
type MailerService struct{}

// NewMailerService creates a mailer service
func NewMailerService() *MailerService {
	return &MailerService{}
}

// Send delivers one plain-text email
func (m *MailerService) Send(cfg SMTPConfig, to []string, subject, body string) error {
	message := fmt.Sprintf("From: \"%s\" <%s>\r\n", cfg.SenderName, cfg.SenderEmail)
	message += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += "Content-Type: text/plain; charset=UTF-8\r\n"
	message += "\r\n"
	message += body

	auth := smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	if err := smtp.SendMail(addr, auth, cfg.SenderEmail, to, []byte(message)); err != nil {
		// Some providers close the connection early after accepting the
		// message; treat that specific error as success.
		if !strings.Contains(err.Error(), "short response") {
			return fmt.Errorf("failed to send email: %w", err)
		}
	}

	return nil
}
