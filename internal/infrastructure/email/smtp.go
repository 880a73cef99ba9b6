package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"purser/internal/shared/config"
)

// SMTPInviteMailer delivers team invite emails. The plaintext invite token
// only ever travels inside this email; the database stores its hash.
type SMTPInviteMailer struct {
	cfg    config.EmailConfig
	appURL string
	dialer *gomail.Dialer
}

func NewSMTPInviteMailer(cfg config.EmailConfig, appURL string) *SMTPInviteMailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPInviteMailer{
		cfg:    cfg,
		appURL: appURL,
		dialer: dialer,
	}
}

func (s *SMTPInviteMailer) SendInvite(_ context.Context, email, agencyName, role, token string, expiresAt time.Time) error {
	acceptURL := fmt.Sprintf("%s/invites/accept?token=%s", s.appURL, token)
	expiry := expiresAt.Format("January 2, 2006")

	subject := fmt.Sprintf("You've been invited to join %s", agencyName)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Join %s</h2>
			<p>You've been invited to join %s as a %s.</p>
			<p><a href="%s">Accept your invite</a></p>
			<p>Or copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>This invite expires on %s.</p>
			<p>If you weren't expecting this email, you can safely ignore it.</p>
		</body>
		</html>
	`, agencyName, agencyName, role, acceptURL, acceptURL, expiry)

	plainBody := fmt.Sprintf(`
You've been invited to join %s as a %s.

Accept your invite by visiting:
%s

This invite expires on %s.

If you weren't expecting this email, you can safely ignore it.
	`, agencyName, role, acceptURL, expiry)

	return s.sendEmail(email, subject, htmlBody, plainBody)
}

func (s *SMTPInviteMailer) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.FromAddress, s.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
