package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"productos/internal/errs"
	"productos/internal/models"
)

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
// It reserves stock through the MemoryProductRepository it is built with.
type MemoryOrderRepository struct {
	products *MemoryProductRepository
	orders   map[uint]models.Order
	nextID   uint
	mu       sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository(products *MemoryProductRepository) *MemoryOrderRepository {
	return &MemoryOrderRepository{
		products: products,
		orders:   make(map[uint]models.Order),
		nextID:   1,
	}
}

// GetAll returns all orders ordered by id.
func (r *MemoryOrderRepository) GetAll(_ context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, cloneOrder(order))
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

// GetByID returns an order by its ID.
func (r *MemoryOrderRepository) GetByID(_ context.Context, id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, errs.NewNotFoundError(orderResource, id)
	}
	order = cloneOrder(order)
	return &order, nil
}

// Create reserves stock and stores the order.
func (r *MemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	if err := r.products.reserve(order.Items); err != nil {
		return err
	}

	total := decimal.Zero
	for _, item := range order.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	order.ID = r.nextID
	order.Total = total
	if order.Status == "" {
		order.Status = models.OrderPending
	}
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	r.nextID++

	r.orders[order.ID] = cloneOrder(*order)
	return nil
}

// UpdateStatus updates the status of an order.
func (r *MemoryOrderRepository) UpdateStatus(_ context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, errs.NewNotFoundError(orderResource, id)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	order = cloneOrder(order)
	return &order, nil
}

// cloneOrder gives o its own Items so callers cannot write through to the store.
func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	return o
}
