package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Client wraps the Gmail API client for sending mail.
type Client struct {
	service *gmail.Service
}

// NewClient creates a new Gmail client using an existing OAuth2 config and
// token. This reuses the same credentials as Google Calendar.
func NewClient(config *oauth2.Config, token *oauth2.Token) (*Client, error) {
	if token == nil {
		return nil, fmt.Errorf("no token available")
	}

	httpClient := config.Client(context.Background(), token)
	service, err := gmail.NewService(context.Background(), option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{service: service}, nil
}

// Profile returns the authenticated account's email address.
func (c *Client) Profile() (string, error) {
	if c.service == nil {
		return "", fmt.Errorf("Gmail service not initialized")
	}

	profile, err := c.service.Users.GetProfile("me").Do()
	if err != nil {
		return "", fmt.Errorf("failed to get profile: %w", err)
	}
	return profile.EmailAddress, nil
}

// Send builds a plain-text MIME message and sends it from the authenticated
// account. Returns the Gmail message ID.
func (c *Client) Send(to, subject, body string) (string, error) {
	if c.service == nil {
		return "", fmt.Errorf("Gmail service not initialized")
	}

	from, err := c.Profile()
	if err != nil {
		return "", err
	}

	raw := buildRawMessage(from, to, subject, body)
	sent, err := c.service.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	return sent.Id, nil
}

// buildRawMessage assembles an RFC 2822 text message and base64url-encodes
// it the way the Gmail API expects.
func buildRawMessage(from, to, subject, body string) string {
	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return base64.URLEncoding.EncodeToString([]byte(msg.String()))
}
