package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"academy/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create adds a new order.
func (r *MockOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if _, exists := r.orders[order.ID]; exists {
		return fmt.Errorf("failed to create order: duplicate ID %s", order.ID)
	}
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
	}
	return &order, nil
}

// GetByPaymentIntentID returns the order bound to a gateway reference.
func (r *MockOrderRepository) GetByPaymentIntentID(_ context.Context, paymentIntentID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.PaymentIntentID != nil && *order.PaymentIntentID == paymentIntentID {
			return &order, nil
		}
	}
	return nil, fmt.Errorf("order with payment intent %s: %w", paymentIntentID, ErrOrderNotFound)
}

// GetAll returns a page of orders, newest first.
func (r *MockOrderRepository) GetAll(_ context.Context, page models.Page) ([]models.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page = page.Normalize()
	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].CreatedAt.After(orderList[j].CreatedAt)
	})

	total := int64(len(orderList))
	start := page.Offset()
	if start < 0 {
		start = 0
	}
	if start >= len(orderList) {
		return []models.Order{}, total, nil
	}
	end := start + page.Size
	if end > len(orderList) {
		end = len(orderList)
	}
	return orderList[start:end], total, nil
}

// AttachPaymentIntent binds the gateway reference to an order.
func (r *MockOrderRepository) AttachPaymentIntent(_ context.Context, id, paymentIntentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
	}
	if order.PaymentIntentID != nil {
		if *order.PaymentIntentID == paymentIntentID {
			return nil
		}
		return fmt.Errorf("order %s: %w", id, ErrPaymentIntentConflict)
	}
	for otherID, other := range r.orders {
		if otherID != id && other.PaymentIntentID != nil && *other.PaymentIntentID == paymentIntentID {
			return fmt.Errorf("payment intent %s already bound to another order: %w", paymentIntentID, ErrPaymentIntentConflict)
		}
	}
	pi := paymentIntentID
	order.PaymentIntentID = &pi
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// TransitionStatus moves a PENDING order to a terminal status.
func (r *MockOrderRepository) TransitionStatus(_ context.Context, id string, to models.OrderStatus) (bool, error) {
	if !to.Terminal() {
		return false, fmt.Errorf("%w: target status %s is not terminal", ErrInvalidTransition, to)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return false, fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
	}
	switch order.Status {
	case models.OrderPending:
		order.Status = to
		order.UpdatedAt = time.Now()
		r.orders[id] = order
		return true, nil
	case to:
		return false, nil
	default:
		return false, fmt.Errorf("%w: order %s is %s, cannot become %s", ErrInvalidTransition, id, order.Status, to)
	}
}

// MarkNotified claims the notification marker for an order.
func (r *MockOrderRepository) MarkNotified(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return false, fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
	}
	if order.NotifiedAt != nil {
		return false, nil
	}
	now := time.Now()
	order.NotifiedAt = &now
	r.orders[id] = order
	return true, nil
}

// FindOrphaned returns PENDING orders without a gateway reference.
func (r *MockOrderRepository) FindOrphaned(_ context.Context, olderThan time.Duration) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cutoff := time.Now().Add(-olderThan)
	var orphans []models.Order
	for _, order := range r.orders {
		if order.Status == models.OrderPending && order.PaymentIntentID == nil && order.CreatedAt.Before(cutoff) {
			orphans = append(orphans, order)
		}
	}
	return orphans, nil
}
