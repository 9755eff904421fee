package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"size:255;not null"`
	Slug        string          `gorm:"size:255;uniqueIndex;not null"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Category    Category        `gorm:"foreignKey:CategoryID"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	IsAvailable bool            `gorm:"default:true;index"`
	Featured    bool            `gorm:"default:false"`
	Color       string          `gorm:"size:30;default:'white'"`
	Material    string          `gorm:"size:30;default:'wood'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProductFilter struct {
	CategorySlug  string
	Query         string
	OnlyAvailable bool
	OnlyFeatured  bool
	Sort          string
	Page          int
	PageSize      int
}
