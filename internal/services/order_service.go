package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"productos/internal/errs"
	"productos/internal/models"
	"productos/internal/repositories"
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	events    EventPublisher
	log       *zerolog.Logger
}

// NewOrderService creates a new OrderService. events may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, events EventPublisher, log *zerolog.Logger) *OrderService {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &OrderService{
		orderRepo: orderRepo,
		events:    events,
		log:       log,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// CreateOrder places an order for userID. Stock is reserved and the order
// stored atomically; unit prices and the total come from the catalogue.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, items []models.OrderItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, errs.NewBadRequestError("el pedido debe contener al menos un producto")
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, errs.NewBadRequestError(fmt.Sprintf("cantidad inválida para el producto %d", item.ProductID))
		}
	}

	order := &models.Order{
		UserID: userID,
		Items:  items,
		Status: models.OrderPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().Uint("order_id", order.ID).Str("total", order.Total.String()).Msg("order created")
	s.publish(EventOrderCreated, order)
	return order, nil
}

// UpdateOrderStatus updates the status of an existing order.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	st := models.OrderStatus(status)
	if !st.Valid() {
		return nil, errs.NewBadRequestError(fmt.Sprintf("estado de pedido inválido: %s", status))
	}

	order, err := s.orderRepo.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}
	s.publish(EventOrderStatusUpdated, map[string]any{"id": order.ID, "status": order.Status})
	return order, nil
}

func (s *OrderService) publish(eventType string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(eventType, payload); err != nil {
		s.log.Warn().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}
