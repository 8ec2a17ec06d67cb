package mail

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

// Client delivers plain-text mail through the SMTP relay configured in the
// environment. Only the "send a message to an address" contract matters here;
// delivery failures are the caller's problem to log or swallow.
type Client struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewClient() *Client {
	return &Client{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

// Send delivers a plain-text message to a single recipient.
func (c *Client) Send(to, subject, body string) error {
	if c.host == "" {
		return fmt.Errorf("SMTP_HOST is not set")
	}

	msg := strings.Join([]string{
		"From: " + c.from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := c.host + ":" + c.port
	var auth smtp.Auth
	if c.username != "" {
		auth = smtp.PlainAuth("", c.username, c.password, c.host)
	}

	if err := smtp.SendMail(addr, auth, c.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}

	return nil
}
