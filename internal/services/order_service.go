package services

import (
	"context"

	"academy/internal/models"
	"academy/internal/repositories"
)

// OrderService exposes orders to the admin panel. Orders are read-only
// here; status changes come from checkout and webhooks.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// ListOrders retrieves a page of orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, page models.Page) (models.Paginated[models.Order], error) {
	page = page.Normalize()
	orders, total, err := s.orderRepo.GetAll(ctx, page)
	if err != nil {
		return models.Paginated[models.Order]{}, err
	}
	return models.Paginated[models.Order]{Items: orders, Total: total, Page: page.Number, Limit: page.Size}, nil
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}
