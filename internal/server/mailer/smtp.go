package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/sentinelx/breachwatch/internal/breach"
)

// seam for tests
var smtpSendMail = smtp.SendMail

// SMTPMailer sends multipart (plain + HTML) alert mail through a single
// SMTP relay. Auth is skipped when no username is configured, which is the
// usual setup for local relays.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(host string, port int, username string, password string, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (m *SMTPMailer) SendBreachAlert(ctx context.Context, to string, newBreaches []breach.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := fmt.Sprintf("Security alert: %d new data breach(es) found for %s", len(newBreaches), to)
	msg := buildMessage(m.from, to, subject, alertText(to, newBreaches), alertHTML(to, newBreaches))

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtpSendMail(addr, auth, m.from, []string{to}, msg)
}

const boundary = "breachwatch-alt"

func buildMessage(from, to, subject, textBody, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(textBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}

func alertText(to string, records []breach.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New data breaches were detected for %s:\r\n\r\n", to)
	for _, r := range records {
		fmt.Fprintf(&b, "- %s (%s): %s\r\n", r.Name, r.BreachDate, strings.Join(r.DataExposed, ", "))
	}
	b.WriteString("\r\nWe recommend reviewing your account security as soon as possible.\r\n")
	return b.String()
}

func alertHTML(to string, records []breach.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>New data breaches were detected for <b>%s</b>:</p><ul>", to)
	for _, r := range records {
		fmt.Fprintf(&b, "<li><b>%s</b> (%s): %s</li>", r.Name, r.BreachDate, strings.Join(r.DataExposed, ", "))
	}
	b.WriteString("</ul><p>We recommend reviewing your account security as soon as possible.</p>")
	return b.String()
}
