package core

import (
	"fmt"
	"net/smtp"
	"net/url"
	"strings"
)

const htmlMime = "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n"

// headerValue folds a value onto one line so it cannot open a new header
// or end the header block.
var headerValue = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

type MailMessage struct {
	Subject    string
	From       string
	To         []string
	Cc         []string
	BodyString string
	IsHTML     bool
}

func (m MailMessage) Content() []byte {
	var b strings.Builder

	writeHeader(&b, "From", m.From)
	writeHeader(&b, "To", strings.Join(m.To, ","))
	if len(m.Cc) > 0 {
		writeHeader(&b, "Cc", strings.Join(m.Cc, ","))
	}
	writeHeader(&b, "Subject", m.Subject)

	if m.IsHTML {
		b.WriteString(htmlMime)
	}

	b.WriteString("\r\n")
	b.WriteString(m.BodyString)

	return []byte(b.String())
}

func writeHeader(b *strings.Builder, name string, value string) {
	fmt.Fprintf(b, "%s: %s\r\n", name, headerValue.Replace(value))
}

type EmailSender interface {
	Send(m MailMessage) error
}

type EmailClient struct {
	host string
	auth smtp.Auth
}

func NewEmailClient(host *url.URL, username string, password string) *EmailClient {
	authHost := host.Host

	parts := strings.Split(host.Host, ":")
	if len(parts) > 1 {
		authHost = parts[0]
	}

	return &EmailClient{
		auth: smtp.PlainAuth("", username, password, authHost),
		host: host.Host,
	}
}

func (c *EmailClient) Send(m MailMessage) error {
	recipients := append(append([]string{}, m.To...), m.Cc...)
	return smtp.SendMail(c.host, c.auth, m.From, recipients, m.Content())
}
