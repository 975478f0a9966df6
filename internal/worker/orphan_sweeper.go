// Package worker holds background jobs started alongside the HTTP server.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"academy/internal/models"
	"academy/internal/repositories"
	"academy/pkg/rabbitmq"
)

// EventPublisher publishes order lifecycle events.
type EventPublisher interface {
	PublishOrderEvent(routingKey string, payload interface{}) error
}

// OrphanSweeper fails PENDING orders that never received a payment
// reference. Such orders are left behind when checkout could not attach
// the intent id, and no webhook can ever resolve them.
type OrphanSweeper struct {
	orders    repositories.OrderRepository
	publisher EventPublisher
	interval  time.Duration
	maxAge    time.Duration
}

// NewOrphanSweeper creates a sweeper. publisher may be nil.
func NewOrphanSweeper(orders repositories.OrderRepository, publisher EventPublisher, interval, maxAge time.Duration) *OrphanSweeper {
	return &OrphanSweeper{
		orders:    orders,
		publisher: publisher,
		interval:  interval,
		maxAge:    maxAge,
	}
}

// Run sweeps on every tick until ctx is cancelled. A non-positive
// interval disables the sweeper.
func (s *OrphanSweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		log.Printf("Orphan sweeper disabled: invalid interval %s", s.interval)
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("Orphan sweeper started (interval %s, max age %s)", s.interval, s.maxAge)

	for {
		select {
		case <-ctx.Done():
			log.Println("Orphan sweeper stopped")
			return
		case <-ticker.C:
			n, err := s.SweepOnce(ctx)
			if err != nil {
				log.Printf("Orphan sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("Orphan sweep marked %d order(s) FAILED", n)
			}
		}
	}
}

// SweepOnce runs a single pass and returns how many orders it failed.
func (s *OrphanSweeper) SweepOnce(ctx context.Context) (int, error) {
	orphans, err := s.orders.FindOrphaned(ctx, s.maxAge)
	if err != nil {
		return 0, fmt.Errorf("failed to find orphaned orders: %w", err)
	}

	swept := 0
	for i := range orphans {
		order := &orphans[i]
		changed, err := s.orders.TransitionStatus(ctx, order.ID, models.OrderFailed)
		if errors.Is(err, repositories.ErrInvalidTransition) {
			// A webhook got there first.
			continue
		}
		if err != nil {
			return swept, fmt.Errorf("failed to sweep order %s: %w", order.ID, err)
		}
		if !changed {
			continue
		}
		swept++
		log.Printf("Order %s had no payment reference after %s, marked FAILED", order.ID, s.maxAge)
		s.publish(order)
	}
	return swept, nil
}

func (s *OrphanSweeper) publish(order *models.Order) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishOrderEvent(rabbitmq.RoutingOrderFailed, rabbitmq.OrderEvent{
		OrderID:    order.ID,
		Status:     string(models.OrderFailed),
		CourseID:   order.CourseID,
		CourseName: order.CourseName,
		Amount:     order.Amount,
		Currency:   order.Currency,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", rabbitmq.RoutingOrderFailed, order.ID, err)
	}
}
