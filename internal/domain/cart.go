package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is a profile's uncommitted selection. One cart per profile, created
// with the profile and never deleted; checkout only empties it.
type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProfileID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	UpdatedAt time.Time
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"type:uuid;index:idx_cart_product,unique;not null"`
	ProductID uuid.UUID `gorm:"type:uuid;index:idx_cart_product,unique;not null"`
	Product   Product   `gorm:"foreignKey:ProductID"`
	Quantity  int       `gorm:"not null"`
	AddedAt   time.Time `gorm:"autoCreateTime"`
}

func (ci *CartItem) LinePrice() decimal.Decimal {
	return ci.Product.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].LinePrice())
	}
	return total
}

func (c *Cart) TotalItems() int {
	n := 0
	for i := range c.Items {
		n += c.Items[i].Quantity
	}
	return n
}
