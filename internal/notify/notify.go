// Package notify delivers ranked picks to external sinks.
package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"time"

	"github.com/gocarina/gocsv"

	"streak-picker/internal/config"
	"streak-picker/internal/store"
	"streak-picker/pkg/utils"
)

// Notifier delivers a run's ranked picks. Delivery is best-effort: a failed
// notification never rolls back persistence.
type Notifier interface {
	SendPicks(ctx context.Context, picks []store.PickRow, runAt time.Time) error
}

// EmailNotifier mails the picks as a CSV attachment over SMTP.
type EmailNotifier struct {
	smtpHost string
	smtpPort int
	username string
	password string
	from     string
	to       string
	enabled  bool
}

// NewEmailNotifier creates an email notifier from configuration.
func NewEmailNotifier(cfg config.EmailConfig) *EmailNotifier {
	return &EmailNotifier{
		smtpHost: cfg.SMTPHost,
		smtpPort: cfg.SMTPPort,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		to:       cfg.To,
		enabled:  cfg.Enabled && cfg.SMTPHost != "" && cfg.From != "" && cfg.To != "",
	}
}

// IsEnabled returns whether the notifier is enabled.
func (e *EmailNotifier) IsEnabled() bool {
	return e.enabled
}

// SendPicks renders the picks to CSV and mails them as an attachment.
func (e *EmailNotifier) SendPicks(ctx context.Context, picks []store.PickRow, runAt time.Time) error {
	if !e.enabled {
		return nil
	}

	csvContent, err := gocsv.MarshalString(&picks)
	if err != nil {
		return fmt.Errorf("rendering picks CSV: %w", err)
	}

	stamp := utils.FormatRunTime(runAt)
	subject := fmt.Sprintf("Trading Picks - %s", stamp)
	body := "Here are today's picks for your trade. Check the attachment."
	filename := fmt.Sprintf("trading-picks-%s.csv", stamp)

	msg, err := buildMessage(e.from, e.to, subject, body, filename, []byte(csvContent))
	if err != nil {
		return fmt.Errorf("building email: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", e.smtpHost, e.smtpPort)

	var auth smtp.Auth
	if e.username != "" && e.password != "" {
		auth = smtp.PlainAuth("", e.username, e.password, e.smtpHost)
	}

	// Implicit TLS on 465, STARTTLS otherwise.
	if e.smtpPort == 465 {
		return e.sendWithTLS(addr, auth, msg)
	}
	return smtp.SendMail(addr, auth, e.from, []string{e.to}, msg)
}

// buildMessage assembles a multipart message with a plain-text body and a
// base64-encoded CSV attachment.
func buildMessage(from, to, subject, body, filename string, attachment []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=UTF-8")
	textPart, err := writer.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(textPart, "%s\r\n", body)

	attachHeader := textproto.MIMEHeader{}
	attachHeader.Set("Content-Type", "text/csv")
	attachHeader.Set("Content-Transfer-Encoding", "base64")
	attachHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	attachPart, err := writer.CreatePart(attachHeader)
	if err != nil {
		return nil, err
	}

	encoded := base64.StdEncoding.EncodeToString(attachment)
	// Wrap base64 lines at 76 characters per RFC 2045.
	for len(encoded) > 76 {
		fmt.Fprintf(attachPart, "%s\r\n", encoded[:76])
		encoded = encoded[76:]
	}
	fmt.Fprintf(attachPart, "%s\r\n", encoded)

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sendWithTLS sends email using implicit TLS (port 465).
func (e *EmailNotifier) sendWithTLS(addr string, auth smtp.Auth, msg []byte) error {
	tlsConfig := &tls.Config{
		ServerName: e.smtpHost,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("TLS dial failed: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, e.smtpHost)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP auth failed: %w", err)
		}
	}

	if err := client.Mail(e.from); err != nil {
		return fmt.Errorf("SMTP MAIL command failed: %w", err)
	}
	if err := client.Rcpt(e.to); err != nil {
		return fmt.Errorf("SMTP RCPT command failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA command failed: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("writing email body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing email body: %w", err)
	}

	return client.Quit()
}

// NoOpNotifier is a notifier that does nothing (for disabled notifications).
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// SendPicks does nothing.
func (n *NoOpNotifier) SendPicks(ctx context.Context, picks []store.PickRow, runAt time.Time) error {
	return nil
}
