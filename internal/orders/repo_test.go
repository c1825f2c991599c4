package orders

import (
	"context"
	"testing"
	"time"

	"github.com/borrago/dropentregas/pkg/db"
	"github.com/borrago/dropentregas/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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
	if err := conn.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedVehicle(t *testing.T, conn *gorm.DB, name, price string) *models.Vehicle {
	t.Helper()
	vehicle := &models.Vehicle{Name: name, BasePrice: dec(price)}
	if err := conn.Create(vehicle).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	return vehicle
}

func TestCreateAndFindWithItems(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	moto := seedVehicle(t, conn, "Moto", "20")
	userID := uuid.New()

	order := &models.Order{
		UserID:      userID,
		Origin:      "Rua A",
		Destination: "Rua B",
		Subtotal:    dec("60"),
		Discount:    dec("10"),
		Total:       dec("50"),
		Items: []models.OrderItem{
			{VehicleID: moto.ID, Qty: 3, UnitPrice: dec("20"), LineTotal: dec("60")},
		},
	}
	if _, err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := repo.FindByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(found.Items) != 1 {
		t.Fatalf("expected 1 item got %d", len(found.Items))
	}
	if found.Items[0].Vehicle == nil || found.Items[0].Vehicle.Name != "Moto" {
		t.Fatalf("expected preloaded vehicle, got %+v", found.Items[0].Vehicle)
	}
	if !found.Total.Equal(dec("50")) {
		t.Fatalf("expected total 50 got %s", found.Total)
	}
}

func TestListByUserNewestFirst(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	moto := seedVehicle(t, conn, "Moto", "20")
	userID := uuid.New()
	otherUser := uuid.New()

	base := time.Now().Add(-time.Hour)
	for i, dest := range []string{"first", "second", "third"} {
		order := &models.Order{
			UserID:      userID,
			Origin:      "Rua A",
			Destination: dest,
			Subtotal:    dec("20"),
			Discount:    decimal.Zero,
			Total:       dec("20"),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
			Items: []models.OrderItem{
				{VehicleID: moto.ID, Qty: 1, UnitPrice: dec("20"), LineTotal: dec("20")},
			},
		}
		if _, err := repo.Create(ctx, order); err != nil {
			t.Fatalf("create %s: %v", dest, err)
		}
	}
	if _, err := repo.Create(ctx, &models.Order{
		UserID: otherUser, Origin: "X", Destination: "Y",
		Subtotal: dec("20"), Discount: decimal.Zero, Total: dec("20"),
	}); err != nil {
		t.Fatalf("create other user order: %v", err)
	}

	orders, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders got %d", len(orders))
	}
	if orders[0].Destination != "third" || orders[2].Destination != "first" {
		t.Fatalf("expected newest first, got %s..%s", orders[0].Destination, orders[2].Destination)
	}
}

func TestCreateRollsBackAtomically(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	client := db.NewWithConn(conn)
	ctx := context.Background()

	moto := seedVehicle(t, conn, "Moto", "20")

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := repo.WithTx(tx).Create(ctx, &models.Order{
			UserID:      uuid.New(),
			Origin:      "Rua A",
			Destination: "Rua B",
			Subtotal:    dec("20"),
			Discount:    decimal.Zero,
			Total:       dec("20"),
			Items: []models.OrderItem{
				{VehicleID: moto.ID, Qty: 1, UnitPrice: dec("20"), LineTotal: dec("20")},
			},
		})
		if err != nil {
			return err
		}
		return context.Canceled
	})
	if err == nil {
		t.Fatal("expected transaction to fail")
	}

	var orderCount, itemCount int64
	if err := conn.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if err := conn.Model(&models.OrderItem{}).Count(&itemCount).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if orderCount != 0 || itemCount != 0 {
		t.Fatalf("expected rollback to leave nothing, got %d orders %d items", orderCount, itemCount)
	}
}
