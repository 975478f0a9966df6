package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"academy/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create inserts a new order.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves a single order by its ID.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByPaymentIntentID retrieves the order bound to a gateway reference.
func (r *GORMOrderRepository) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "payment_intent_id = ?", paymentIntentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with payment intent %s: %w", paymentIntentID, ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to get order by payment intent %s: %w", paymentIntentID, err)
	}
	return &order, nil
}

// GetAll returns a page of orders, newest first, and the total count.
func (r *GORMOrderRepository) GetAll(ctx context.Context, page models.Page) ([]models.Order, int64, error) {
	page = page.Normalize()
	var (
		orders []models.Order
		total  int64
	)
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Offset(page.Offset()).Limit(page.Size).Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, total, nil
}

// AttachPaymentIntent binds the gateway reference to an order.
func (r *GORMOrderRepository) AttachPaymentIntent(ctx context.Context, id, paymentIntentID string) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND payment_intent_id IS NULL", id).
		Updates(map[string]interface{}{
			"payment_intent_id": paymentIntentID,
			"updated_at":        time.Now(),
		})
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("payment intent %s already bound to another order: %w", paymentIntentID, ErrPaymentIntentConflict)
	}
	if res.Error != nil {
		return fmt.Errorf("failed to attach payment intent to order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	order, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order.PaymentIntentID != nil && *order.PaymentIntentID == paymentIntentID {
		return nil
	}
	return fmt.Errorf("order %s: %w", id, ErrPaymentIntentConflict)
}

// TransitionStatus moves a PENDING order to a terminal status.
// The conditional update keeps the transition a single atomic statement.
func (r *GORMOrderRepository) TransitionStatus(ctx context.Context, id string, to models.OrderStatus) (bool, error) {
	if !to.Terminal() {
		return false, fmt.Errorf("%w: target status %s is not terminal", ErrInvalidTransition, to)
	}

	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, models.OrderPending).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to update status for order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 1 {
		return true, nil
	}

	order, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if order.Status == to {
		return false, nil
	}
	return false, fmt.Errorf("%w: order %s is %s, cannot become %s", ErrInvalidTransition, id, order.Status, to)
}

// MarkNotified claims the notification marker for an order.
func (r *GORMOrderRepository) MarkNotified(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND notified_at IS NULL", id).
		Update("notified_at", time.Now())
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark order %s notified: %w", id, res.Error)
	}
	if res.RowsAffected == 1 {
		return true, nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

// FindOrphaned returns PENDING orders that never got a gateway reference.
func (r *GORMOrderRepository) FindOrphaned(ctx context.Context, olderThan time.Duration) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("status = ? AND payment_intent_id IS NULL AND created_at < ?", models.OrderPending, time.Now().Add(-olderThan)).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orphaned orders: %w", err)
	}
	return orders, nil
}
