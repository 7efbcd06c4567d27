package services

import (
	"github.com/Mr-K2901/TnP-Portal/internal/config"
	"gopkg.in/gomail.v2"
)

// EmailService sends campaign emails over SMTP. Implements EmailSender.
type EmailService struct {
	host     string
	port     int
	user     string
	password string
	fromName string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		fromName: cfg.SMTPFromName,
	}
}

func (s *EmailService) IsConfigured() bool {
	return s.user != "" && s.password != ""
}

func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return ErrProviderNotConfigured
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.user, s.fromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	dialer := gomail.NewDialer(s.host, s.port, s.user, s.password)
	return dialer.DialAndSend(m)
}
