package notify

import (
	"encoding/base64"
	"fmt"
	"html"
	"net/smtp"
	"strings"
)

// EmailClient sends the run result as an HTML mail over SMTP.
type EmailClient struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       []string

	// send is a seam for tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmail creates an email client.
func NewEmail(host string, port int, username, password, from string, to []string) *EmailClient {
	return &EmailClient{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		to:       to,
		send:     smtp.SendMail,
	}
}

// Send delivers the message. An empty summary is omitted from the body
// rather than rendered as a blank paragraph.
func (c *EmailClient) Send(msg Message) error {
	var body strings.Builder
	fmt.Fprintf(&body, "<h2>%s</h2>\n", html.EscapeString(msg.Title))
	if msg.Summary != "" {
		fmt.Fprintf(&body, "<blockquote>%s</blockquote>\n", html.EscapeString(msg.Summary))
	}
	fmt.Fprintf(&body, "<p>%s · <code>%s</code></p>\n",
		html.EscapeString(msg.Date), html.EscapeString(msg.Path))

	var raw strings.Builder
	fmt.Fprintf(&raw, "From: %s\r\n", c.from)
	fmt.Fprintf(&raw, "To: %s\r\n", strings.Join(c.to, ", "))
	fmt.Fprintf(&raw, "Subject: %s\r\n", mimeEncodeHeader(msg.Title))
	raw.WriteString("MIME-Version: 1.0\r\n")
	raw.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	raw.WriteString("\r\n")
	raw.WriteString(body.String())

	addr := fmt.Sprintf("%s:%d", c.host, c.port)
	var auth smtp.Auth
	if c.username != "" {
		auth = smtp.PlainAuth("", c.username, c.password, c.host)
	}
	if err := c.send(addr, auth, c.from, c.to, []byte(raw.String())); err != nil {
		return fmt.Errorf("notify: send mail: %w", err)
	}
	return nil
}

// mimeEncodeHeader wraps non-ASCII header values in RFC 2047 encoding.
func mimeEncodeHeader(s string) string {
	for _, r := range s {
		if r > 127 {
			return fmt.Sprintf("=?UTF-8?B?%s?=", base64.StdEncoding.EncodeToString([]byte(s)))
		}
	}
	return s
}
