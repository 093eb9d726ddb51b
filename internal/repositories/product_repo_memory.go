package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"productos/internal/errs"
	"productos/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// GetAll returns all products ordered by id.
func (r *MemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(models.Product) bool { return true }), nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, errs.NewNotFoundError(productResource, id)
	}
	return &product, nil
}

// GetByCategory returns the products of one category ordered by id.
func (r *MemoryProductRepository) GetByCategory(_ context.Context, category models.Category) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(p models.Product) bool { return p.Category == category }), nil
}

// Create adds a new product and assigns the next id.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	product.ID = r.nextID
	product.CreatedAt = now
	product.UpdatedAt = now
	r.nextID++
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MemoryProductRepository) Update(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return errs.NewNotFoundError(productResource, product.ID)
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// UpdateStock sets the stock of an existing product.
func (r *MemoryProductRepository) UpdateStock(_ context.Context, id uint, stock int) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, errs.NewNotFoundError(productResource, id)
	}
	product.Stock = stock
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return &product, nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return errs.NewNotFoundError(productResource, id)
	}
	delete(r.products, id)
	return nil
}

// reserve checks every item against current stock and, only if all fit,
// decrements stock and fills in the unit prices. Items are updated in place.
func (r *MemoryProductRepository) reserve(items []models.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining := make(map[uint]int, len(items))
	for _, item := range items {
		product, ok := r.products[item.ProductID]
		if !ok {
			return errs.NewNotFoundError(productResource, item.ProductID)
		}
		available, seen := remaining[item.ProductID]
		if !seen {
			available = product.Stock
		}
		if available < item.Quantity {
			return errs.NewInsufficientStockError(product.ID, product.Name, item.Quantity, available)
		}
		remaining[item.ProductID] = available - item.Quantity
	}

	now := time.Now()
	for i := range items {
		product := r.products[items[i].ProductID]
		items[i].Price = product.Price
		product.Stock = remaining[product.ID]
		product.UpdatedAt = now
		r.products[product.ID] = product
	}
	return nil
}

// filter must be called with the lock held.
func (r *MemoryProductRepository) filter(keep func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
