package notify

import (
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends outbound email via the Resend API. It is used as a
// fallback transport when no Gmail token is available.
type ResendSender struct {
	client      *resend.Client
	fromAddress string
}

// NewResendSender creates a Resend-backed sender. Returns nil when no API
// key is configured.
func NewResendSender(apiKey, from string) *ResendSender {
	if apiKey == "" || from == "" {
		return nil
	}
	return &ResendSender{
		client:      resend.NewClient(apiKey),
		fromAddress: from,
	}
}

// Profile returns the configured sender address.
func (r *ResendSender) Profile() (string, error) {
	return r.fromAddress, nil
}

// Send delivers a plain-text email and returns the Resend message ID.
func (r *ResendSender) Send(to, subject, body string) (string, error) {
	params := &resend.SendEmailRequest{
		From:    r.fromAddress,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	sent, err := r.client.Emails.Send(params)
	if err != nil {
		return "", fmt.Errorf("resend send failed: %w", err)
	}
	return sent.Id, nil
}
