// Package mail delivers magic-link login messages.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/claude/liftlog/internal/config"
)

// Mailer sends a magic-link login message to a recipient.
type Mailer interface {
	SendMagicLink(ctx context.Context, to, loginURL string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	cfg config.MailConfig
}

// NewSMTPMailer builds a mailer from mail config.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendMagicLink implements Mailer.
func (m *SMTPMailer) SendMagicLink(_ context.Context, to, loginURL string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Your LiftLog login link\r\n\r\n"+
		"Click to log in (the link is valid for a limited time and works once):\r\n\r\n%s\r\n",
		m.cfg.Sender, to, loginURL)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.Sender, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending magic link mail: %w", err)
	}
	return nil
}

// LogMailer logs login links instead of sending them. Used in development
// when mail is disabled.
type LogMailer struct {
	Log *slog.Logger
}

// SendMagicLink implements Mailer.
func (m *LogMailer) SendMagicLink(_ context.Context, to, loginURL string) error {
	m.Log.Info("magic link issued (mail disabled)", "to", to, "url", loginURL)
	return nil
}
