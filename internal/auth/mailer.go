// AngelaMos | 2026
// mailer.go

package auth

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/carterperez-dev/bookhaven/internal/config"
)

// Mailer delivers reset codes out of band. The code must never reach the
// client through the API response in production.
type Mailer interface {
	SendResetCode(to, code string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *smtpMailer) SendResetCode(to, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your BookHaven password reset code")
	msg.SetBody("text/html", fmt.Sprintf(
		`<h1>Password reset</h1>
		<p>Your verification code is:</p>
		<h2>%s</h2>
		<p>It expires in 10 minutes. If you didn't request this, ignore this email.</p>`,
		code,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send reset code to %s: %w", to, err)
	}

	return nil
}

// logMailer is the development fallback: the code goes to the server
// console, the way the storefront has always worked locally.
type logMailer struct{}

func NewLogMailer() Mailer {
	return logMailer{}
}

func (logMailer) SendResetCode(to, code string) error {
	slog.Info("password reset code issued",
		"email", to,
		"code", code,
		"expires_in", "10m",
	)
	return nil
}
