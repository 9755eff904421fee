package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProfileID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	Number          string          `gorm:"size:100;uniqueIndex;not null"`
	Status          OrderStatus     `gorm:"type:varchar(30);default:'pending';index"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	ShippingAddress string          `gorm:"type:text"`
	Phone           string          `gorm:"size:30"`
	Notes           string          `gorm:"type:text"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem snapshots the product price at checkout time. The product row
// itself stays referenced, so products named by an order cannot be deleted.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Product   Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (oi *OrderItem) LineTotal() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
