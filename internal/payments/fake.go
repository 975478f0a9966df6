package payments

import (
	"context"
	"fmt"
	"sync"

	"github.com/stripe/stripe-go/v76/webhook"
)

// FakeGateway is an in-process Gateway for local development and tests.
// Intents are fabricated; webhooks are parsed with the real Stripe rules.
type FakeGateway struct {
	mu       sync.Mutex
	requests []IntentRequest
	err      error
	webhooks *StripeGateway
}

// NewFakeGateway creates a FakeGateway verifying webhooks with webhookSecret.
func NewFakeGateway(webhookSecret string) *FakeGateway {
	return &FakeGateway{
		webhooks: &StripeGateway{webhookSecret: webhookSecret},
	}
}

// FailWith makes subsequent CreatePaymentIntent calls fail with err.
// Passing nil restores success.
func (g *FakeGateway) FailWith(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

// Requests returns the intent requests received so far.
func (g *FakeGateway) Requests() []IntentRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]IntentRequest(nil), g.requests...)
}

func (g *FakeGateway) CreatePaymentIntent(_ context.Context, req IntentRequest) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, &GatewayError{Op: "create payment intent", Err: g.err}
	}
	id := fmt.Sprintf("pi_fake_%d", len(g.requests))
	return &Intent{ID: id, ClientSecret: id + "_secret_fake"}, nil
}

func (g *FakeGateway) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	return g.webhooks.ParseWebhook(payload, signature)
}

// SignPayload returns a valid signature header for payload under secret.
func SignPayload(payload []byte, secret string) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: payload,
		Secret:  secret,
	}).Header
}
