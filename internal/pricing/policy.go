package pricing

import (
	"math"

	"github.com/borrago/dropentregas/pkg/db/models"
	"github.com/shopspring/decimal"
)

// NormalizeQuantity coerces a requested quantity into a positive integer.
// Fractional values are truncated, then floored at one.
func NormalizeQuantity(requested float64) int {
	if math.IsNaN(requested) || math.IsInf(requested, 0) {
		return 1
	}
	qty := int(math.Trunc(requested))
	if qty < 1 {
		return 1
	}
	return qty
}

// DiscountFor computes the discount a coupon grants against a subtotal.
// Percent coupons scale the subtotal, fixed coupons subtract a flat amount.
// The result honors the coupon's max discount cap and never exceeds the
// subtotal, so totals cannot go negative.
func DiscountFor(coupon *models.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	if coupon == nil || subtotal.Sign() <= 0 {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch coupon.Kind {
	case models.CouponKindPercent:
		discount = subtotal.Mul(coupon.Amount).Div(decimal.NewFromInt(100)).Round(2)
	default:
		discount = coupon.Amount
	}

	if discount.Sign() < 0 {
		return decimal.Zero
	}
	if coupon.MaxDiscount != nil && discount.GreaterThan(*coupon.MaxDiscount) {
		discount = *coupon.MaxDiscount
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	return discount
}
