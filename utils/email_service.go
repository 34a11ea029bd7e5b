package utils

import (
	"fmt"
	"net/smtp"
)

type EmailService interface {
	SendPasswordResetEmail(to, username, token string) error
}

type emailService struct {
	smtpHost string
	smtpPort string
	username string
	password string
	from     string
	appURL   string
}

func NewEmailService(smtpHost, smtpPort, username, password, from, appURL string) EmailService {
	return &emailService{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		from:     from,
		appURL:   appURL,
	}
}

func (e *emailService) SendPasswordResetEmail(to, username, token string) error {
	subject := "Reset Your Password - SonicBox"
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", e.appURL, token)

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body>
    <h2>Hi %s,</h2>
    <p>We received a request to reset your SonicBox password.</p>
    <p><a href="%s">Reset Password</a></p>
    <p>Or copy and paste this link into your browser:</p>
    <p>%s</p>
    <p>This link will expire shortly. If you didn't request a reset, ignore this email.</p>
</body>
</html>
`, username, resetURL, resetURL)

	return e.sendEmail(to, subject, body)
}

func (e *emailService) sendEmail(to, subject, body string) error {
	if e.username == "" || e.password == "" {
		fmt.Printf("\n=== EMAIL WOULD BE SENT ===\nTo: %s\nSubject: %s\n===========================\n", to, subject)
		return nil
	}

	auth := smtp.PlainAuth("", e.username, e.password, e.smtpHost)

	headers := map[string]string{
		"From":         e.from,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n" + body

	addr := fmt.Sprintf("%s:%s", e.smtpHost, e.smtpPort)
	if err := smtp.SendMail(addr, auth, e.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
