// Package newsletter sends campaign emails to subscribers. The concrete
// implementation uses the Resend API; a no-op sender keeps local environments
// working without credentials.
package newsletter

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// Sender delivers one campaign to a list of recipients and reports how many
// messages were handed off.
type Sender interface {
	Send(ctx context.Context, subject, htmlBody string, recipients []string) (int, error)
}

type resendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender builds a Sender backed by the Resend API. from must be an
// address under a domain verified in the Resend dashboard.
func NewResendSender(apiKey, from string) (Sender, error) {
	if apiKey == "" {
		return nil, errors.New("newsletter: resend api key is required")
	}
	if from == "" {
		return nil, errors.New("newsletter: from address is required")
	}
	return &resendSender{client: resend.NewClient(apiKey), from: from}, nil
}

func (s *resendSender) Send(ctx context.Context, subject, htmlBody string, recipients []string) (int, error) {
	sent := 0
	for _, to := range recipients {
		_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
			From:    s.from,
			To:      []string{to},
			Subject: subject,
			Html:    htmlBody,
		})
		if err != nil {
			return sent, fmt.Errorf("send to %s: %w", to, err)
		}
		sent++
	}
	return sent, nil
}

type noopSender struct{}

// NewNoopSender returns a Sender that accepts every campaign without
// delivering anything. Used when no API key is configured.
func NewNoopSender() Sender { return noopSender{} }

func (noopSender) Send(_ context.Context, _, _ string, recipients []string) (int, error) {
	return len(recipients), nil
}
