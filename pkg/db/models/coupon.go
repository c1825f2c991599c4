package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Coupon kinds. Fixed subtracts a flat amount, percent scales the subtotal.
const (
	CouponKindFixed   = "fixed"
	CouponKindPercent = "percent"
)

// Coupon is a named discount rule. Codes are stored as written and matched
// case-insensitively after trimming.
type Coupon struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Code        string           `gorm:"column:code;type:text;not null;uniqueIndex"`
	Kind        string           `gorm:"column:kind;not null;default:'fixed'"`
	Amount      decimal.Decimal  `gorm:"column:amount;type:numeric(12,2);not null"`
	MaxDiscount *decimal.Decimal `gorm:"column:max_discount;type:numeric(12,2)"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Coupon) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
