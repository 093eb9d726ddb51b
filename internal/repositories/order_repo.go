package repositories

import (
	"context"

	"productos/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	// Create reserves stock for every item and stores the order atomically.
	// Item prices and the order total are filled in from the stored products.
	// Nothing is written if any item is missing or short on stock.
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error)
}
