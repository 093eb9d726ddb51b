package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Prices are stored in a decimal(12,2) column.
const PriceScale = 2

// MaxPrice is the first value the price column cannot hold.
var MaxPrice = decimal.New(1, 10)

// ValidPrice reports whether p fits the price column without rounding.
func ValidPrice(p decimal.Decimal) bool {
	return p.Equal(p.Truncate(PriceScale)) && p.LessThan(MaxPrice)
}

// Product represents a product in the catalogue.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string          `json:"name" gorm:"type:varchar(100);not null"`
	Description string          `json:"description" gorm:"type:varchar(500)"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	Category    Category        `json:"category" gorm:"type:varchar(32);index;not null"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

// TableName pins the table name regardless of GORM's pluralisation rules.
func (Product) TableName() string {
	return "productos"
}
