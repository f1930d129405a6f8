package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/OctavioMinteguia/jobhub/internal/model"
)

// Ensure SMTPMailer implements model.Mailer.
var _ model.Mailer = (*SMTPMailer)(nil)

// SMTPMailer sends alert emails through a plain SMTP relay (no auth), the
// usual setup for a local MailHog or an internal smarthost.
type SMTPMailer struct {
	addr string // host:port of the relay
	from string
}

// NewSMTPMailer returns a mailer that delivers through the given relay.
func NewSMTPMailer(addr, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from}
}

// Dispatch sends one alert email listing the given jobs.
func (m *SMTPMailer) Dispatch(ctx context.Context, to, subject string, jobs []model.Job) error {
	msg := buildMessage(m.from, to, subject, renderBody(jobs))

	if err := smtp.SendMail(m.addr, nil, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("sending alert to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
