package repositories

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"productos/internal/errs"
	"productos/internal/models"
)

const orderResource = "Pedido"

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// GetAll retrieves all orders with their items.
func (r *GORMOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	if err := r.db.WithContext(ctx).Preload("Items").Order("id").Find(&orders).Error; err != nil {
		return nil, errors.Wrap(err, "failed to get all orders")
	}
	return orders, nil
}

// GetByID retrieves a single order with its items.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError(orderResource, id)
		}
		return nil, errors.Wrapf(err, "failed to get order by ID %d", id)
	}
	return &order, nil
}

// Create decrements stock and inserts the order in a single transaction.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		for i := range order.Items {
			item := &order.Items[i]

			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errs.NewNotFoundError(productResource, item.ProductID)
				}
				return errors.Wrapf(err, "failed to load product %d", item.ProductID)
			}
			if product.Stock < item.Quantity {
				return errs.NewInsufficientStockError(product.ID, product.Name, item.Quantity, product.Stock)
			}

			// The stock guard in the WHERE clause keeps concurrent orders from overselling.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return errors.Wrapf(res.Error, "failed to reserve stock of product %d", product.ID)
			}
			if res.RowsAffected == 0 {
				return errs.NewInsufficientStockError(product.ID, product.Name, item.Quantity, product.Stock)
			}

			item.ID = 0
			item.Price = product.Price
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order.ID = 0
		order.Total = total
		if order.Status == "" {
			order.Status = models.OrderPending
		}
		if err := tx.Create(order).Error; err != nil {
			return errors.Wrap(err, "failed to create order")
		}
		return nil
	})
}

// UpdateStatus changes the status of an order and returns the stored order.
func (r *GORMOrderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, errors.Wrapf(res.Error, "failed to update status of order %d", id)
	}
	if res.RowsAffected == 0 {
		return nil, errs.NewNotFoundError(orderResource, id)
	}
	return r.GetByID(ctx, id)
}
