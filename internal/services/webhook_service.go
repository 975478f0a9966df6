package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"academy/internal/models"
	"academy/internal/money"
	"academy/internal/notifications"
	"academy/internal/payments"
	"academy/internal/repositories"
	"academy/pkg/rabbitmq"
)

// WebhookService reconciles orders with payment processor callbacks.
// It is the only writer of terminal order states besides the checkout
// compensation and the orphan sweeper.
type WebhookService struct {
	orders     repositories.OrderRepository
	gateway    payments.Gateway
	notifier   notifications.Sender
	publisher  EventPublisher
	adminEmail string
}

// NewWebhookService creates a new WebhookService. publisher may be nil.
func NewWebhookService(orders repositories.OrderRepository, gateway payments.Gateway, notifier notifications.Sender, publisher EventPublisher, adminEmail string) *WebhookService {
	return &WebhookService{
		orders:     orders,
		gateway:    gateway,
		notifier:   notifier,
		publisher:  publisher,
		adminEmail: adminEmail,
	}
}

// HandleWebhook verifies and applies one processor event.
//
// Signature and decoding failures are returned as-is. A missing order or
// an impossible transition is logged and acknowledged, since redelivery
// cannot fix it. Storage errors are returned so the processor redelivers.
func (s *WebhookService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	evt, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}

	switch evt.Kind {
	case payments.EventPaymentSucceeded:
		return s.reconcile(ctx, evt, models.OrderCompleted)
	case payments.EventPaymentFailed:
		return s.reconcile(ctx, evt, models.OrderFailed)
	default:
		log.Printf("Ignoring webhook event %s of type %s", evt.ID, evt.RawType)
		return nil
	}
}

func (s *WebhookService) reconcile(ctx context.Context, evt *payments.WebhookEvent, to models.OrderStatus) error {
	order, err := s.lookup(ctx, evt)
	if errors.Is(err, repositories.ErrOrderNotFound) {
		log.Printf("Webhook event %s references unknown order (orderId=%q, intent=%q), acknowledging", evt.ID, evt.OrderID(), evt.PaymentIntentID)
		return nil
	}
	if err != nil {
		return err
	}

	if evt.PaymentIntentID != "" {
		err := s.orders.AttachPaymentIntent(ctx, order.ID, evt.PaymentIntentID)
		if errors.Is(err, repositories.ErrPaymentIntentConflict) {
			log.Printf("Webhook event %s: intent %s does not belong to order %s, ignoring", evt.ID, evt.PaymentIntentID, order.ID)
			return nil
		}
		if err != nil {
			return err
		}
	}

	changed, err := s.orders.TransitionStatus(ctx, order.ID, to)
	if errors.Is(err, repositories.ErrInvalidTransition) {
		log.Printf("Webhook event %s ignored: %v", evt.ID, err)
		return nil
	}
	if err != nil {
		return err
	}

	if changed {
		log.Printf("Order %s transitioned PENDING -> %s", order.ID, to)
		routingKey := rabbitmq.RoutingOrderCompleted
		if to == models.OrderFailed {
			routingKey = rabbitmq.RoutingOrderFailed
		}
		publishOrderEvent(s.publisher, routingKey, order, to)
	} else {
		log.Printf("Order %s already %s, duplicate event %s", order.ID, to, evt.ID)
	}

	s.notify(ctx, order, to)
	return nil
}

func (s *WebhookService) lookup(ctx context.Context, evt *payments.WebhookEvent) (*models.Order, error) {
	if id := evt.OrderID(); id != "" {
		order, err := s.orders.GetByID(ctx, id)
		if err == nil || !errors.Is(err, repositories.ErrOrderNotFound) || evt.PaymentIntentID == "" {
			return order, err
		}
	}
	if evt.PaymentIntentID == "" {
		return nil, fmt.Errorf("event %s carries no order reference: %w", evt.ID, repositories.ErrOrderNotFound)
	}
	return s.orders.GetByPaymentIntentID(ctx, evt.PaymentIntentID)
}

// notify sends customer and admin emails at most once per order. Failures
// are logged by the sender and never affect the status already written.
func (s *WebhookService) notify(ctx context.Context, order *models.Order, status models.OrderStatus) {
	claimed, err := s.orders.MarkNotified(ctx, order.ID)
	if err != nil {
		log.Printf("Failed to claim notification for order %s: %v", order.ID, err)
		return
	}
	if !claimed {
		log.Printf("Notifications for order %s already sent, skipping", order.ID)
		return
	}

	data := notifications.OrderEmail{
		OrderID:       order.ID,
		CourseName:    order.CourseName,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		Amount:        money.Format(order.Amount, order.Currency),
	}
	switch status {
	case models.OrderCompleted:
		s.notifier.Send(ctx, notifications.PaymentConfirmed(order.CustomerEmail, data))
		s.notifier.Send(ctx, notifications.AdminSale(s.adminEmail, data))
	case models.OrderFailed:
		s.notifier.Send(ctx, notifications.PaymentFailed(order.CustomerEmail, data))
	}
}
