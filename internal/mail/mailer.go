package mail

import (
	"fmt"
	"log"

	"github.com/foc-sab/ctrlroom/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends the password-reset notifications. Delivery is fire-and-forget:
// callers log failures but never surface them, so the reset endpoint's
// response stays identical whether or not an account exists.
type Mailer interface {
	// SendPasswordReset mails the reset link with the plaintext token.
	SendPasswordReset(email, token string) error
	// SendPasswordResetGeneric mails the "no account" variant without
	// revealing that no account exists.
	SendPasswordResetGeneric(email string) error
}

type smtpMailer struct {
	dialer       *gomail.Dialer
	from         string
	resetLinkURL string
}

// NewMailer returns an SMTP-backed mailer, or a log-only fallback when no
// SMTP host is configured (useful in development).
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		log.Println("SMTP_HOST not configured, password-reset mail will only be logged")
		return &logMailer{}
	}

	return &smtpMailer{
		dialer:       gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:         cfg.MailFrom,
		resetLinkURL: cfg.ResetLinkURL,
	}
}

func (m *smtpMailer) SendPasswordReset(email, token string) error {
	link := fmt.Sprintf("%s?email=%s&token=%s", m.resetLinkURL, email, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "CtrlRoom password reset")
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>We received a request to reset the password for your CtrlRoom account.</p>"+
			"<p><a href=%q>Reset your password</a></p>"+
			"<p>This link expires in 60 minutes. If you did not request a reset, you can ignore this email.</p>",
		link,
	))

	return m.dialer.DialAndSend(msg)
}

func (m *smtpMailer) SendPasswordResetGeneric(email string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "CtrlRoom password reset")
	msg.SetBody("text/html",
		"<p>A password reset was requested for this address, but no CtrlRoom "+
			"account uses it. If this was you, try the address you registered with.</p>")

	return m.dialer.DialAndSend(msg)
}

type logMailer struct{}

func (m *logMailer) SendPasswordReset(email, token string) error {
	log.Printf("[mail] password reset for %s, token: %s", email, token)
	return nil
}

func (m *logMailer) SendPasswordResetGeneric(email string) error {
	log.Printf("[mail] generic password-reset notice for %s", email)
	return nil
}
