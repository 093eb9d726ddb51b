package services

// Event types published by the services.
const (
	EventProductCreated      = "product.created"
	EventProductUpdated      = "product.updated"
	EventProductStockUpdated = "product.stock_updated"
	EventProductDeleted      = "product.deleted"
	EventOrderCreated        = "order.created"
	EventOrderStatusUpdated  = "order.status_updated"
)

// EventPublisher delivers domain events to a message broker.
// *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(eventType string, payload any) error
}
