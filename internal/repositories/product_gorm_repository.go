package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"productos/internal/errs"
	"productos/internal/models"
)

const productResource = "Producto"

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products ordered by id.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "failed to get all products")
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError(productResource, id)
		}
		return nil, errors.Wrapf(err, "failed to get product by ID %d", id)
	}
	return &product, nil
}

// GetByCategory retrieves the products of one category ordered by id.
func (r *GORMProductRepository) GetByCategory(ctx context.Context, category models.Category) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get products of category %s", category)
	}
	return products, nil
}

// Create inserts a new product; the database assigns the id.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = 0
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return errors.Wrap(err, "failed to create product")
	}
	return nil
}

// Update replaces every mutable field of an existing product.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"stock":       product.Stock,
			"category":    product.Category,
		})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "failed to update product %d", product.ID)
	}
	// Updates with a map never reports ErrRecordNotFound, so check RowsAffected.
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError(productResource, product.ID)
	}
	return nil
}

// UpdateStock sets the stock of an existing product and returns the stored row.
func (r *GORMProductRepository) UpdateStock(ctx context.Context, id uint, stock int) (*models.Product, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("stock", stock)
	if res.Error != nil {
		return nil, errors.Wrapf(res.Error, "failed to update stock of product %d", id)
	}
	if res.RowsAffected == 0 {
		return nil, errs.NewNotFoundError(productResource, id)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a product by its ID.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "failed to delete product %d", id)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError(productResource, id)
	}
	return nil
}
