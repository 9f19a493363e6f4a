package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adebayof/gromart-backend/pkg/enums"
)

// Order is the persisted checkout result. Created once with status pending;
// only the status column changes afterwards.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	DeliveryAddress string            `gorm:"column:delivery_address;not null"`
	EstateOrHotel   string            `gorm:"column:estate_or_hotel;not null"`
	PhoneNumber     string            `gorm:"column:phone_number;not null"`
	TotalAmount     decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Status          enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	User            *Profile          `gorm:"foreignKey:UserID"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
