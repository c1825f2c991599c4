package pricing

import (
	"math"
	"testing"

	"github.com/borrago/dropentregas/pkg/db/models"
	"github.com/shopspring/decimal"
)

func TestNormalizeQuantity(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 1},
		{-3, 1},
		{1, 1},
		{2, 2},
		{2.7, 2},
		{0.4, 1},
		{100, 100},
		{math.NaN(), 1},
		{math.Inf(1), 1},
	}
	for _, tc := range cases {
		if got := NormalizeQuantity(tc.in); got != tc.want {
			t.Fatalf("NormalizeQuantity(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDiscountForFixed(t *testing.T) {
	coupon := &models.Coupon{Code: "MOTO10", Kind: models.CouponKindFixed, Amount: dec("10")}

	if got := DiscountFor(coupon, dec("60")); !got.Equal(dec("10")) {
		t.Fatalf("expected 10 got %s", got)
	}
	// fixed discounts never exceed the subtotal
	if got := DiscountFor(coupon, dec("4")); !got.Equal(dec("4")) {
		t.Fatalf("expected 4 got %s", got)
	}
}

func TestDiscountForPercent(t *testing.T) {
	coupon := &models.Coupon{Code: "CARRO15", Kind: models.CouponKindPercent, Amount: dec("15")}

	if got := DiscountFor(coupon, dec("60")); !got.Equal(dec("9")) {
		t.Fatalf("expected 9 got %s", got)
	}
	if got := DiscountFor(coupon, dec("100")); !got.Equal(dec("15")) {
		t.Fatalf("expected 15 got %s", got)
	}
}

func TestDiscountForPercentWithCap(t *testing.T) {
	cap := dec("5")
	coupon := &models.Coupon{Code: "CARRO15", Kind: models.CouponKindPercent, Amount: dec("15"), MaxDiscount: &cap}

	if got := DiscountFor(coupon, dec("60")); !got.Equal(dec("5")) {
		t.Fatalf("expected capped discount 5 got %s", got)
	}
}

func TestDiscountForNilCouponOrZeroSubtotal(t *testing.T) {
	if got := DiscountFor(nil, dec("60")); !got.IsZero() {
		t.Fatalf("expected zero got %s", got)
	}
	coupon := &models.Coupon{Code: "MOTO10", Kind: models.CouponKindFixed, Amount: dec("10")}
	if got := DiscountFor(coupon, decimal.Zero); !got.IsZero() {
		t.Fatalf("expected zero got %s", got)
	}
}
