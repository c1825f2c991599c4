package coupons

import (
	"context"
	"strings"

	"github.com/borrago/dropentregas/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes read access to coupon definitions.
type Repository interface {
	List(ctx context.Context) ([]models.Coupon, error)
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a coupons repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&coupons).Error
	if err != nil {
		return nil, err
	}
	return coupons, nil
}

// FindByCode matches case-insensitively after trimming whitespace.
func (r *repository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	var coupon models.Coupon
	err := r.db.WithContext(ctx).
		Where("UPPER(code) = ?", normalized).
		First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}
