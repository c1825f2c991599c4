package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/borrago/dropentregas/pkg/db/models"
	pkgerrors "github.com/borrago/dropentregas/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VehicleFinder resolves vehicles referenced by cart lines.
type VehicleFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
}

// CouponFinder resolves coupon codes. Unknown codes are not an error at the
// engine level, they price as if no coupon was sent.
type CouponFinder interface {
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
}

// CartLine is one requested vehicle with a desired quantity. Qty arrives as a
// float so fractional client input can still be normalized.
type CartLine struct {
	VehicleID string  `json:"vehicleId"`
	Qty       float64 `json:"qty"`
}

// LineBreakdown is the priced form of a cart line.
type LineBreakdown struct {
	VehicleID string          `json:"vehicleId"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CouponSummary echoes the applied coupon back to the caller.
type CouponSummary struct {
	Code   string          `json:"code"`
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// Quote is a full pricing breakdown. It carries no side effects and is safe
// to recompute any number of times.
type Quote struct {
	Items    []LineBreakdown `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
	Coupon   *CouponSummary  `json:"coupon,omitempty"`
}

// Engine prices carts against the vehicle catalog and coupon rules.
type Engine struct {
	vehicles VehicleFinder
	coupons  CouponFinder
}

func NewEngine(vehicles VehicleFinder, coupons CouponFinder) (*Engine, error) {
	if vehicles == nil {
		return nil, fmt.Errorf("vehicle finder required")
	}
	if coupons == nil {
		return nil, fmt.Errorf("coupon finder required")
	}
	return &Engine{vehicles: vehicles, coupons: coupons}, nil
}

// Quote prices the cart. Every referenced vehicle must exist or the whole
// quote fails. Lines keep their request order in the breakdown.
func (e *Engine) Quote(ctx context.Context, lines []CartLine, couponCode string) (*Quote, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "items are required")
	}

	quote := &Quote{
		Items:    make([]LineBreakdown, 0, len(lines)),
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
	}

	for _, line := range lines {
		raw := strings.TrimSpace(line.VehicleID)
		if raw == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicleId is required")
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid vehicleId: %s", raw))
		}

		vehicle, err := e.vehicles.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("vehicle not found: %s", raw))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up vehicle")
		}

		qty := NormalizeQuantity(line.Qty)
		lineTotal := vehicle.BasePrice.Mul(decimal.NewFromInt(int64(qty)))

		quote.Items = append(quote.Items, LineBreakdown{
			VehicleID: vehicle.ID.String(),
			Name:      vehicle.Name,
			Qty:       qty,
			UnitPrice: vehicle.BasePrice,
			LineTotal: lineTotal,
		})
		quote.Subtotal = quote.Subtotal.Add(lineTotal)
	}

	coupon, err := e.resolveCoupon(ctx, couponCode)
	if err != nil {
		return nil, err
	}
	if coupon != nil {
		quote.Discount = DiscountFor(coupon, quote.Subtotal)
		quote.Coupon = &CouponSummary{
			Code:   coupon.Code,
			Kind:   coupon.Kind,
			Amount: coupon.Amount,
		}
	}

	quote.Total = quote.Subtotal.Sub(quote.Discount)
	if quote.Total.Sign() < 0 {
		quote.Total = decimal.Zero
	}
	return quote, nil
}

// resolveCoupon looks up a code, treating blanks and unknown codes as "no
// coupon" rather than failing the quote.
func (e *Engine) resolveCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, nil
	}
	coupon, err := e.coupons.FindByCode(ctx, trimmed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up coupon")
	}
	return coupon, nil
}
