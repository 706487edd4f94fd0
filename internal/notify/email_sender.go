package notify

import (
	"fmt"
	"log"
	"time"

	gomail "gopkg.in/mail.v2"
)

const smtpDialTimeout = 10 * time.Second

// EmailConfig holds SMTP configuration for sending filing alerts.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	ToEmail    string
	Enabled    bool
}

func (cfg EmailConfig) validate() error {
	if cfg.SMTPServer == "" {
		return fmt.Errorf("SMTP server is not set")
	}
	if cfg.FromEmail == "" || cfg.ToEmail == "" {
		return fmt.Errorf("sender and recipient addresses are required")
	}
	return nil
}

// EmailSender delivers filing alerts via SMTP.
type EmailSender struct {
	cfg EmailConfig
}

// NewEmailSender creates a sender with the given SMTP configuration.
func NewEmailSender(cfg EmailConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

// Send delivers an alert with HTML body and plain text fallback. A disabled
// configuration is a no-op.
func (s *EmailSender) Send(msg *RenderedMessage) error {
	if !s.cfg.Enabled {
		return nil
	}

	if err := s.cfg.validate(); err != nil {
		return fmt.Errorf("invalid email configuration: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", s.cfg.ToEmail)
	m.SetHeader("Subject", msg.Subject)

	if msg.HTML != "" && msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	} else if msg.HTML != "" {
		m.SetBody("text/html", msg.HTML)
	} else {
		m.SetBody("text/plain", msg.Text)
	}

	dialer := gomail.NewDialer(s.cfg.SMTPServer, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	dialer.Timeout = smtpDialTimeout

	if err := dialer.DialAndSend(m); err != nil {
		log.Printf("Email error: failed to deliver alert to %s (Subject: %s): %v", s.cfg.ToEmail, msg.Subject, err)
		return err
	}

	log.Printf("Alert email sent: %s", msg.Subject)
	return nil
}
