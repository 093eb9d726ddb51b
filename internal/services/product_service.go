package services

import (
	"context"

	"github.com/rs/zerolog"

	"productos/internal/errs"
	"productos/internal/models"
	"productos/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
	log    *zerolog.Logger
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher, log *zerolog.Logger) *ProductService {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &ProductService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// GetProductsByCategory retrieves the products of one category.
func (s *ProductService) GetProductsByCategory(ctx context.Context, category models.Category) ([]models.Product, error) {
	return s.repo.GetByCategory(ctx, category)
}

// CreateProduct creates a new product and returns it as stored. The
// repository assigns the ID.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = 0
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	created, err := s.repo.GetByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	s.publish(EventProductCreated, created)
	return created, nil
}

// UpdateProduct replaces every mutable field of the product with the given id.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, product *models.Product) (*models.Product, error) {
	product.ID = id
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(EventProductUpdated, updated)
	return updated, nil
}

// UpdateStock sets the stock of a product.
func (s *ProductService) UpdateStock(ctx context.Context, id uint, stock int) (*models.Product, error) {
	if stock < 0 {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, errs.NewInsufficientStockError(id, current.Name, stock, current.Stock)
	}
	product, err := s.repo.UpdateStock(ctx, id, stock)
	if err != nil {
		return nil, err
	}
	s.publish(EventProductStockUpdated, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(EventProductDeleted, map[string]uint{"id": id})
	return nil
}

func (s *ProductService) publish(eventType string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(eventType, payload); err != nil {
		s.log.Warn().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}
