package coupons

import (
	"time"

	"github.com/borrago/dropentregas/pkg/db/models"
	"github.com/shopspring/decimal"
)

// CouponDTO is the wire representation of a coupon rule.
type CouponDTO struct {
	ID          string           `json:"id"`
	Code        string           `json:"code"`
	Kind        string           `json:"kind"`
	Amount      decimal.Decimal  `json:"amount"`
	MaxDiscount *decimal.Decimal `json:"maxDiscount,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func FromModel(m *models.Coupon) CouponDTO {
	return CouponDTO{
		ID:          m.ID.String(),
		Code:        m.Code,
		Kind:        m.Kind,
		Amount:      m.Amount,
		MaxDiscount: m.MaxDiscount,
		CreatedAt:   m.CreatedAt,
	}
}

func FromModels(ms []models.Coupon) []CouponDTO {
	out := make([]CouponDTO, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
