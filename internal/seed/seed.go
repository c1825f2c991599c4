package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/borrago/dropentregas/pkg/config"
	"github.com/borrago/dropentregas/pkg/db"
	"github.com/borrago/dropentregas/pkg/db/models"
	"github.com/borrago/dropentregas/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr(s string) *string {
	return &s
}

var vehicles = []models.Vehicle{
	{Name: "Moto", BasePrice: dec("20"), DefaultCoupon: ptr("MOTO10")},
	{Name: "Carro", BasePrice: dec("50"), DefaultCoupon: ptr("CARRO15")},
	{Name: "Van", BasePrice: dec("100"), DefaultCoupon: ptr("VAN20")},
	{Name: "Caminhão", BasePrice: dec("200"), DefaultCoupon: ptr("CAMINHAO25")},
	{Name: "Ônibus", BasePrice: dec("300"), DefaultCoupon: ptr("ONIBUS30")},
}

var coupons = []models.Coupon{
	{Code: "MOTO10", Kind: models.CouponKindFixed, Amount: dec("10")},
	{Code: "CARRO15", Kind: models.CouponKindPercent, Amount: dec("15")},
	{Code: "VAN20", Kind: models.CouponKindFixed, Amount: dec("20")},
	{Code: "CAMINHAO25", Kind: models.CouponKindFixed, Amount: dec("25")},
	{Code: "ONIBUS30", Kind: models.CouponKindFixed, Amount: dec("30")},
}

// Run inserts the base catalog and coupon set. Existing rows are left
// untouched, so repeated runs are safe.
func Run(ctx context.Context, conn *gorm.DB) error {
	for i := range vehicles {
		var existing models.Vehicle
		err := conn.WithContext(ctx).Where("name = ?", vehicles[i].Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("checking vehicle %s: %w", vehicles[i].Name, err)
		}
		record := vehicles[i]
		if err := conn.WithContext(ctx).Create(&record).Error; err != nil {
			return fmt.Errorf("seeding vehicle %s: %w", record.Name, err)
		}
	}

	for i := range coupons {
		var existing models.Coupon
		err := conn.WithContext(ctx).Where("code = ?", coupons[i].Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("checking coupon %s: %w", coupons[i].Code, err)
		}
		record := coupons[i]
		if err := conn.WithContext(ctx).Create(&record).Error; err != nil {
			return fmt.Errorf("seeding coupon %s: %w", record.Code, err)
		}
	}

	return nil
}

// MaybeRunDev seeds automatically when the app runs in dev mode with the
// feature flag enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoSeed {
		return nil
	}

	logg.Info(ctx, "seeding base catalog (dev auto-run)")
	if err := Run(ctx, client.DB()); err != nil {
		return fmt.Errorf("running seed: %w", err)
	}
	logg.Info(ctx, "seed completed")
	return nil
}
