// Package payments wraps the hosted payment processor.
package payments

import (
	"context"
	"errors"
	"fmt"
)

// SignatureHeader carries the processor's webhook signature.
const SignatureHeader = "Stripe-Signature"

// EventKind is the processor-independent kind of a webhook event.
type EventKind string

const (
	EventPaymentSucceeded EventKind = "payment_succeeded"
	EventPaymentFailed    EventKind = "payment_failed"
	EventUnknown          EventKind = "unknown"
)

// Metadata keys echoed back verbatim by the processor on webhook events.
const (
	MetaOrderID       = "orderId"
	MetaCourseID      = "courseId"
	MetaCourseName    = "courseName"
	MetaCustomerName  = "customerName"
	MetaCustomerEmail = "customerEmail"
	MetaCustomerPhone = "customerPhone"
)

var (
	ErrSignatureVerification = errors.New("webhook signature verification failed")
	ErrMalformedEvent        = errors.New("malformed webhook event")
)

// GatewayError reports a processor call that was rejected or failed.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// IntentRequest describes a charge attempt to open with the processor.
type IntentRequest struct {
	Amount         int64 // Minor units
	Currency       string
	Metadata       map[string]string
	IdempotencyKey string
}

// Intent is the processor's handle on an in-progress charge.
type Intent struct {
	ID           string
	ClientSecret string
}

// WebhookEvent is a verified, decoded processor callback.
type WebhookEvent struct {
	ID              string
	Kind            EventKind
	RawType         string
	PaymentIntentID string
	Metadata        map[string]string
}

// OrderID returns the order id embedded in the event metadata, if any.
func (e *WebhookEvent) OrderID() string {
	if e.Metadata == nil {
		return ""
	}
	return e.Metadata[MetaOrderID]
}

// Gateway is the payment processor client used by checkout and webhooks.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}
