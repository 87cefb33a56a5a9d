package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"honeypot-llm/internal/domain"
)

// SMTPSender envia alertas de inteligencia via SMTP.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	to       string
	useTLS   bool
}

func NewSMTPSender(host string, port int, username, password, from, fromName, to string, useTLS bool) (*SMTPSender, error) {
	if strings.TrimSpace(host) == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if strings.TrimSpace(from) == "" {
		return nil, fmt.Errorf("smtp from is required")
	}
	if strings.TrimSpace(to) == "" {
		return nil, fmt.Errorf("alert recipient is required")
	}
	if port == 0 {
		port = 587
	}
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
		to:       to,
		useTLS:   useTLS,
	}, nil
}

func (s *SMTPSender) SendIntelligenceAlert(_ context.Context, report domain.IntelligenceReport) error {
	subject := fmt.Sprintf("Honeypot intelligence: session %s", report.SessionID)
	body := buildAlertBody(report)
	msg := buildMessage(s.from, s.fromName, s.to, subject, body)
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if s.useTLS {
		conn, err := tls.Dial("tcp", addr, &tls.Config{
			ServerName: s.host,
		})
		if err != nil {
			return err
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.host)
		if err != nil {
			return err
		}
		defer client.Quit()

		if auth != nil {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
		if err := client.Mail(s.from); err != nil {
			return err
		}
		if err := client.Rcpt(s.to); err != nil {
			return err
		}
		writer, err := client.Data()
		if err != nil {
			return err
		}
		if _, err := writer.Write([]byte(msg)); err != nil {
			_ = writer.Close()
			return err
		}
		return writer.Close()
	}

	return smtp.SendMail(addr, auth, s.from, []string{s.to}, []byte(msg))
}

func buildAlertBody(report domain.IntelligenceReport) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session: %s\n", report.SessionID))
	sb.WriteString(fmt.Sprintf("Verdict: %s\n", report.Verdict))
	sb.WriteString(fmt.Sprintf("Captured at: %s UTC\n\n", report.CreatedAt.UTC().Format(time.RFC3339)))
	appendArtifacts(&sb, "Bank accounts", report.BankAccounts)
	appendArtifacts(&sb, "UPI handles", report.UPIHandles)
	appendArtifacts(&sb, "Phishing links", report.PhishingLinks)
	return sb.String()
}

func appendArtifacts(sb *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	for _, v := range values {
		sb.WriteString("  - " + v + "\n")
	}
}

func buildMessage(from, fromName, to, subject, body string) string {
	fromHeader := from
	if strings.TrimSpace(fromName) != "" {
		fromHeader = fmt.Sprintf("%s <%s>", fromName, from)
	}

	headers := []string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}

	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}
