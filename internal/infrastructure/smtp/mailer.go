package smtp

import (
	"fmt"
	"net/smtp"

	"github.com/hobbs-it/helpdesk-bot/internal/config"
)

// Mailer sends emails.
type Mailer interface {
	SendEmail(to, subject, body string) error
	SendVerificationEmail(to string, code int) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) SendEmail(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}

// SendVerificationEmail sends the verification-code email the intake flow
// depends on.
func (m *mailer) SendVerificationEmail(to string, code int) error {
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; line-height: 1.5; color: #333;">
  <h2 style="color: #4CAF50;">Код верификации</h2>
  <p>Ваш код верификации: <strong style="font-size: 1.2em;">%d</strong></p>
  <p>Введите его в Телеграм боте, чтобы создать задачу.</p>
  <p>Спасибо!</p>
  <p style="color: #999; font-size: 0.9em;">Это письмо сгенерировано автоматически. Пожалуйста, не отвечайте на него.</p>
</div>`, code)
	return m.SendEmail(to, "Код верификации", body)
}
