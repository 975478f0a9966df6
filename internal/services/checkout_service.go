package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"academy/internal/models"
	"academy/internal/payments"
	"academy/internal/repositories"
	"academy/internal/validation"
	"academy/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Pricing is the flat price charged for every course.
type Pricing struct {
	AmountCents int64
	Currency    string
}

// CheckoutRequest is the buyer input collected by the checkout form.
type CheckoutRequest struct {
	CourseID      string `json:"courseId" validate:"required,max=64"`
	CourseName    string `json:"courseName" validate:"required,max=255"`
	CustomerName  string `json:"customerName" validate:"required,min=2,max=255"`
	CustomerEmail string `json:"customerEmail" validate:"required,email,max=255"`
	CustomerPhone string `json:"customerPhone" validate:"required,min=6,max=32"`
}

func (r CheckoutRequest) normalized() CheckoutRequest {
	r.CourseID = strings.TrimSpace(r.CourseID)
	r.CourseName = strings.TrimSpace(r.CourseName)
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerEmail = strings.ToLower(strings.TrimSpace(r.CustomerEmail))
	r.CustomerPhone = strings.TrimSpace(r.CustomerPhone)
	return r
}

// CheckoutResult is returned to the browser to complete payment client-side.
type CheckoutResult struct {
	ClientSecret string `json:"clientSecret"`
	OrderID      string `json:"orderId"`
}

// CheckoutService creates orders and opens payment intents for them.
type CheckoutService struct {
	orders    repositories.OrderRepository
	gateway   payments.Gateway
	publisher EventPublisher
	pricing   Pricing
	validate  *validator.Validate
}

// NewCheckoutService creates a new CheckoutService. publisher may be nil.
func NewCheckoutService(orders repositories.OrderRepository, gateway payments.Gateway, publisher EventPublisher, pricing Pricing) *CheckoutService {
	return &CheckoutService{
		orders:    orders,
		gateway:   gateway,
		publisher: publisher,
		pricing:   pricing,
		validate:  validation.New(),
	}
}

// Pricing returns the configured flat price.
func (s *CheckoutService) Pricing() Pricing {
	return s.pricing
}

// CreatePaymentIntent runs the checkout saga:
//  1. insert a PENDING order
//  2. open a payment intent for the flat price
//  3. attach the intent id to the order
//
// When step 2 fails the order is marked FAILED. When step 3 fails the
// order stays PENDING without a reference until the orphan sweeper runs.
func (s *CheckoutService) CreatePaymentIntent(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	req = req.normalized()
	if err := s.validate.Struct(req); err != nil {
		return nil, &ValidationError{Fields: validation.Fields(err)}
	}

	order := &models.Order{
		ID:            uuid.New().String(),
		CourseID:      req.CourseID,
		CourseName:    req.CourseName,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Amount:        s.pricing.AmountCents,
		Currency:      s.pricing.Currency,
		Status:        models.OrderPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, payments.IntentRequest{
		Amount:   order.Amount,
		Currency: order.Currency,
		Metadata: map[string]string{
			payments.MetaOrderID:       order.ID,
			payments.MetaCourseID:      order.CourseID,
			payments.MetaCourseName:    order.CourseName,
			payments.MetaCustomerName:  order.CustomerName,
			payments.MetaCustomerEmail: order.CustomerEmail,
			payments.MetaCustomerPhone: order.CustomerPhone,
		},
		IdempotencyKey: order.ID,
	})
	if err != nil {
		s.compensate(ctx, order)
		var gwErr *payments.GatewayError
		if !errors.As(err, &gwErr) {
			err = &payments.GatewayError{Op: "create payment intent", Err: err}
		}
		return nil, err
	}

	if err := s.orders.AttachPaymentIntent(ctx, order.ID, intent.ID); err != nil {
		log.Printf("Order %s left PENDING without payment intent %s: %v", order.ID, intent.ID, err)
		return nil, fmt.Errorf("failed to attach payment intent to order %s: %w", order.ID, err)
	}

	publishOrderEvent(s.publisher, rabbitmq.RoutingOrderCreated, order, models.OrderPending)
	log.Printf("Checkout started for order %s (intent %s)", order.ID, intent.ID)

	return &CheckoutResult{ClientSecret: intent.ClientSecret, OrderID: order.ID}, nil
}

// compensate marks an order FAILED after the gateway rejected it. It runs
// detached from ctx so a disconnected client cannot leave an orphan behind.
func (s *CheckoutService) compensate(ctx context.Context, order *models.Order) {
	ctx = context.WithoutCancel(ctx)
	if _, err := s.orders.TransitionStatus(ctx, order.ID, models.OrderFailed); err != nil {
		log.Printf("Failed to mark order %s FAILED after gateway error: %v", order.ID, err)
		return
	}
	publishOrderEvent(s.publisher, rabbitmq.RoutingOrderFailed, order, models.OrderFailed)
}

func publishOrderEvent(publisher EventPublisher, routingKey string, order *models.Order, status models.OrderStatus) {
	if publisher == nil {
		return
	}
	evt := rabbitmq.OrderEvent{
		OrderID:    order.ID,
		Status:     string(status),
		CourseID:   order.CourseID,
		CourseName: order.CourseName,
		Amount:     order.Amount,
		Currency:   order.Currency,
		OccurredAt: time.Now().UTC(),
	}
	if err := publisher.PublishOrderEvent(routingKey, evt); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	}
}
