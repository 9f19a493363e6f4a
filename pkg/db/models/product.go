package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/adebayof/gromart-backend/pkg/enums"
)

// Product is a catalog listing. The storefront never mutates these; admin
// endpoints own all writes.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string                `gorm:"column:name;not null"`
	Description *string               `gorm:"column:description"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	ImageURL    *string               `gorm:"column:image_url"`
	Category    enums.ProductCategory `gorm:"column:category;type:text;not null"`
	Tags        pq.StringArray        `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	InStock     bool                  `gorm:"column:in_stock;not null;default:true"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
