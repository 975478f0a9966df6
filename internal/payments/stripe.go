package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Config holds the processor credentials.
type Config struct {
	SecretKey string
	// WebhookSecret signs webhook deliveries. When empty, signatures are
	// not verified; this is only acceptable in development.
	WebhookSecret string
	// Backends overrides the HTTP backends, e.g. to point at a test server.
	Backends *stripe.Backends
}

// StripeGateway is a Gateway backed by the Stripe API.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

// NewStripeGateway creates a new StripeGateway.
func NewStripeGateway(cfg Config) *StripeGateway {
	if cfg.WebhookSecret == "" {
		log.Println("Warning: STRIPE_WEBHOOK_SECRET not set, webhook signatures will not be verified")
	}
	return &StripeGateway{
		api:           client.New(cfg.SecretKey, cfg.Backends),
		webhookSecret: cfg.WebhookSecret,
	}
}

// CreatePaymentIntent opens a payment intent for the given amount.
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, &GatewayError{Op: "create payment intent", Err: err}
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// ParseWebhook verifies and decodes a Stripe webhook delivery.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	var event stripe.Event
	if g.webhookSecret == "" {
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
	} else {
		var err error
		event, err = webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSignatureVerification, err)
		}
	}

	out := &WebhookEvent{
		ID:      event.ID,
		RawType: string(event.Type),
		Kind:    kindOf(string(event.Type)),
	}
	if out.Kind == EventUnknown {
		return out, nil
	}

	if event.Data == nil {
		return nil, fmt.Errorf("%w: event %s has no data", ErrMalformedEvent, event.ID)
	}
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	out.PaymentIntentID = pi.ID
	out.Metadata = pi.Metadata
	return out, nil
}

func kindOf(stripeType string) EventKind {
	switch stripeType {
	case "payment_intent.succeeded":
		return EventPaymentSucceeded
	case "payment_intent.payment_failed":
		return EventPaymentFailed
	default:
		return EventUnknown
	}
}
