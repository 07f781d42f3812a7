package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"sort"
)

// SMTPProvider implements the Provider interface using SMTP
// This is useful for development with Mailhog or other SMTP servers
type SMTPProvider struct {
	host     string
	port     int
	username string
	password string
	from     Address
	useTLS   bool
}

// NewSMTPProvider creates a new SMTP provider. Port 465 implies implicit TLS.
func NewSMTPProvider(host string, port int, username, password string, from Address) *SMTPProvider {
	return &SMTPProvider{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		useTLS:   port == 465,
	}
}

// Send sends an email using SMTP
func (p *SMTPProvider) Send(ctx context.Context, msg *Message) error {
	from := msg.From
	if from.Email == "" {
		from = p.from
	}

	body, err := buildMIME(from, msg)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", p.host, p.port)
	if p.useTLS {
		return p.sendTLS(addr, from.Email, msg.To, body)
	}
	return p.sendPlain(addr, from.Email, msg.To, body)
}

// buildMIME renders msg as multipart/alternative when it has both bodies.
func buildMIME(from Address, msg *Message) ([]byte, error) {
	var buf bytes.Buffer

	headers := map[string]string{
		"From":         from.String(),
		"To":           msg.To,
		"Subject":      mime.QEncoding.Encode("utf-8", msg.Subject),
		"MIME-Version": "1.0",
	}
	if msg.ReplyTo != "" {
		headers["Reply-To"] = msg.ReplyTo
	}
	for k, v := range msg.Headers {
		if v != "" {
			headers[k] = v
		}
	}

	writeHeaders := func(extra map[string]string) {
		keys := make([]string, 0, len(headers)+len(extra))
		for k := range headers {
			keys = append(keys, k)
		}
		for k := range extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v, ok := extra[k]
			if !ok {
				v = headers[k]
			}
			fmt.Fprintf(&buf, "%s: %s\r\n", k, v)
		}
		buf.WriteString("\r\n")
	}

	switch {
	case msg.HTML != "" && msg.Text != "":
		mw := multipart.NewWriter(&buf)
		writeHeaders(map[string]string{
			"Content-Type": fmt.Sprintf("multipart/alternative; boundary=%q", mw.Boundary()),
		})
		for _, part := range []struct{ ctype, body string }{
			{"text/plain; charset=UTF-8", msg.Text},
			{"text/html; charset=UTF-8", msg.HTML},
		} {
			w, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {part.ctype}})
			if err != nil {
				return nil, err
			}
			if _, err := w.Write([]byte(part.body)); err != nil {
				return nil, err
			}
		}
		if err := mw.Close(); err != nil {
			return nil, err
		}
	case msg.HTML != "":
		writeHeaders(map[string]string{"Content-Type": "text/html; charset=UTF-8"})
		buf.WriteString(msg.HTML)
	default:
		writeHeaders(map[string]string{"Content-Type": "text/plain; charset=UTF-8"})
		buf.WriteString(msg.Text)
	}

	return buf.Bytes(), nil
}

// sendPlain sends email without TLS (for Mailhog and local development)
func (p *SMTPProvider) sendPlain(addr, from, to string, message []byte) error {
	var auth smtp.Auth
	if p.username != "" && p.password != "" {
		auth = smtp.PlainAuth("", p.username, p.password, p.host)
	}

	if err := smtp.SendMail(addr, auth, from, []string{to}, message); err != nil {
		return fmt.Errorf("smtp error: %w", err)
	}
	return nil
}

// sendTLS sends email with TLS
func (p *SMTPProvider) sendTLS(addr, from, to string, message []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{
		ServerName: p.host,
		MinVersion: tls.VersionTLS12,
	})
	if err != nil {
		return fmt.Errorf("tls dial error: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, p.host)
	if err != nil {
		return fmt.Errorf("smtp client error: %w", err)
	}
	defer client.Close()

	if p.username != "" && p.password != "" {
		auth := smtp.PlainAuth("", p.username, p.password, p.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth error: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp mail error: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt error: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data error: %w", err)
	}
	if _, err := writer.Write(message); err != nil {
		return fmt.Errorf("smtp write error: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("smtp close error: %w", err)
	}

	return client.Quit()
}
