// Package notifications sends transactional email on a best-effort basis.
package notifications

import (
	"context"
	"log"
	"strings"

	"github.com/resend/resend-go/v2"
)

// Message is a single outgoing email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender sends a message and reports whether it was accepted.
// Implementations never return errors; failures are logged.
type Sender interface {
	Send(ctx context.Context, msg Message) bool
}

// EmailAPI is the subset of the Resend client used to deliver mail.
type EmailAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Dispatcher delivers email through Resend, or logs it in mock mode.
type Dispatcher struct {
	api  EmailAPI
	from string
}

// NewDispatcher creates a Dispatcher. A missing or placeholder API key
// selects mock mode, where messages are only logged.
func NewDispatcher(apiKey, from string) *Dispatcher {
	if isPlaceholder(apiKey) {
		log.Println("Email API key not configured, notifications run in mock mode")
		return &Dispatcher{from: from}
	}
	return NewWithAPI(resend.NewClient(apiKey).Emails, from)
}

// NewWithAPI creates a Dispatcher around an existing email client.
func NewWithAPI(api EmailAPI, from string) *Dispatcher {
	return &Dispatcher{api: api, from: from}
}

// Mock reports whether the dispatcher only logs messages.
func (d *Dispatcher) Mock() bool {
	return d.api == nil
}

// Send attempts delivery once. No retries.
func (d *Dispatcher) Send(ctx context.Context, msg Message) bool {
	if msg.To == "" {
		log.Printf("Email %q skipped: no recipient", msg.Subject)
		return false
	}
	if d.Mock() {
		log.Printf("[mock email] to=%s subject=%q", msg.To, msg.Subject)
		return true
	}

	sent, err := d.api.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    d.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		log.Printf("Failed to send email %q to %s: %v", msg.Subject, msg.To, err)
		return false
	}
	log.Printf("Sent email %q to %s (id %s)", msg.Subject, msg.To, sent.Id)
	return true
}

func isPlaceholder(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return true
	}
	lower := strings.ToLower(key)
	return strings.Contains(lower, "placeholder") || strings.HasPrefix(lower, "your_") || lower == "re_xxx"
}
