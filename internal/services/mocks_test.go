package services_test

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"

	"academy/internal/notifications"

	"github.com/stretchr/testify/mock"
)

// MockSender is a mock implementation of notifications.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg notifications.Message) bool {
	args := m.Called(ctx, msg)
	return args.Bool(0)
}

// recordingPublisher captures order events instead of sending them to RabbitMQ.
type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *recordingPublisher) PublishOrderEvent(routingKey string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return p.err
}

func (p *recordingPublisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

// captureLog redirects the standard logger for the duration of a test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func paymentEventPayload(eventID, eventType, piID, orderID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"object": "event",
		"type": %q,
		"data": {
			"object": {
				"id": %q,
				"object": "payment_intent",
				"amount": 29700,
				"currency": "usd",
				"metadata": {"orderId": %q}
			}
		}
	}`, eventID, eventType, piID, orderID))
}
