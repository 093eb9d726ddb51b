package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDIENTE"
	OrderProcessing OrderStatus = "PROCESANDO"
	OrderShipped    OrderStatus = "ENVIADO"
	OrderDelivered  OrderStatus = "ENTREGADO"
	OrderCancelled  OrderStatus = "CANCELADO"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderItem represents a single line within an order.
type OrderItem struct {
	ID        uint            `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   uint            `json:"-" gorm:"index;not null"`
	ProductID uint            `json:"product_id" gorm:"not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"` // unit price at the time of order
}

// TableName pins the table name.
func (OrderItem) TableName() string {
	return "pedido_items"
}

// Order represents a customer order.
type Order struct {
	ID        uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string          `json:"user_id" gorm:"type:varchar(100)"`
	Items     []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(14,2);not null"`
	Status    OrderStatus     `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName pins the table name.
func (Order) TableName() string {
	return "pedidos"
}
