package repositories

import (
	"context"
	"errors"
	"time"

	"academy/internal/models"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrInvalidTransition     = errors.New("invalid order status transition")
	ErrPaymentIntentConflict = errors.New("order already bound to a different payment intent")
)

// OrderRepository defines the interface for order data access.
// Orders are never deleted.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*models.Order, error)
	GetAll(ctx context.Context, page models.Page) ([]models.Order, int64, error)
	// AttachPaymentIntent sets the gateway reference if unset. Re-attaching
	// the same value is a no-op; a different value is ErrPaymentIntentConflict.
	AttachPaymentIntent(ctx context.Context, id, paymentIntentID string) error
	// TransitionStatus moves a PENDING order to a terminal status. Writing
	// the status the order already has reports changed=false and no error.
	TransitionStatus(ctx context.Context, id string, to models.OrderStatus) (changed bool, err error)
	// MarkNotified claims the notification marker. It returns false when
	// notifications were already sent for the order.
	MarkNotified(ctx context.Context, id string) (bool, error)
	FindOrphaned(ctx context.Context, olderThan time.Duration) ([]models.Order, error)
}
