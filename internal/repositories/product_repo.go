package repositories

import (
	"context"

	"productos/internal/models"
)

// ProductRepository defines the interface for product data access.
//
// Lookups and mutations of an absent id return *errs.NotFoundError.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetByCategory(ctx context.Context, category models.Category) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	UpdateStock(ctx context.Context, id uint, stock int) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
}
