package seed

import (
	"context"
	"testing"

	"github.com/borrago/dropentregas/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Vehicle{}, &models.Coupon{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestRunSeedsBaseData(t *testing.T) {
	conn := newTestDB(t)

	if err := Run(context.Background(), conn); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var vehicleCount, couponCount int64
	if err := conn.Model(&models.Vehicle{}).Count(&vehicleCount).Error; err != nil {
		t.Fatalf("count vehicles: %v", err)
	}
	if err := conn.Model(&models.Coupon{}).Count(&couponCount).Error; err != nil {
		t.Fatalf("count coupons: %v", err)
	}
	if vehicleCount != 5 || couponCount != 5 {
		t.Fatalf("expected 5 vehicles and 5 coupons, got %d and %d", vehicleCount, couponCount)
	}

	var moto models.Vehicle
	if err := conn.Where("name = ?", "Moto").First(&moto).Error; err != nil {
		t.Fatalf("find moto: %v", err)
	}
	if moto.DefaultCoupon == nil || *moto.DefaultCoupon != "MOTO10" {
		t.Fatalf("expected default coupon MOTO10, got %v", moto.DefaultCoupon)
	}

	var carro15 models.Coupon
	if err := conn.Where("code = ?", "CARRO15").First(&carro15).Error; err != nil {
		t.Fatalf("find carro15: %v", err)
	}
	if carro15.Kind != models.CouponKindPercent {
		t.Fatalf("expected percent coupon, got %s", carro15.Kind)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	conn := newTestDB(t)

	if err := Run(context.Background(), conn); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := Run(context.Background(), conn); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var vehicleCount int64
	if err := conn.Model(&models.Vehicle{}).Count(&vehicleCount).Error; err != nil {
		t.Fatalf("count vehicles: %v", err)
	}
	if vehicleCount != 5 {
		t.Fatalf("expected seed to stay at 5 vehicles, got %d", vehicleCount)
	}
}
