package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/borrago/dropentregas/internal/pricing"
	"github.com/borrago/dropentregas/pkg/db/models"
	pkgerrors "github.com/borrago/dropentregas/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service prices and persists orders.
type Service interface {
	Quote(ctx context.Context, req QuoteRequest) (*pricing.Quote, error)
	Create(ctx context.Context, userID string, req CreateRequest) (*OrderDTO, error)
	ListMine(ctx context.Context, userID string) ([]OrderDTO, error)
}

type service struct {
	repo   Repository
	engine *pricing.Engine
	tx     txRunner
}

func NewService(repo Repository, engine *pricing.Engine, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if engine == nil {
		return nil, fmt.Errorf("pricing engine required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, engine: engine, tx: tx}, nil
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (*pricing.Quote, error) {
	return s.engine.Quote(ctx, req.Items, req.CouponCode)
}

// Create reprices the cart and persists the order atomically. Either the
// header and every item land together or nothing is written.
func (s *service) Create(ctx context.Context, userID string, req CreateRequest) (*OrderDTO, error) {
	uid, err := uuid.Parse(strings.TrimSpace(userID))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)
	if origin == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "origin is required")
	}
	if destination == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destination is required")
	}

	quote, err := s.engine.Quote(ctx, req.Items, req.CouponCode)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:      uid,
		Origin:      origin,
		Destination: destination,
		Subtotal:    quote.Subtotal,
		Discount:    quote.Discount,
		Total:       quote.Total,
		Items:       make([]models.OrderItem, 0, len(quote.Items)),
	}
	if quote.Coupon != nil {
		code := quote.Coupon.Code
		order.CouponCode = &code
	}
	for _, line := range quote.Items {
		vehicleID, err := uuid.Parse(line.VehicleID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "priced line carries bad vehicle id")
		}
		order.Items = append(order.Items, models.OrderItem{
			VehicleID: vehicleID,
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Create(ctx, order)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting order")
	}

	persisted, err := s.repo.FindByID(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading order")
	}

	dto := FromModel(persisted)
	return &dto, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]OrderDTO, error) {
	uid, err := uuid.Parse(strings.TrimSpace(userID))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	orders, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []OrderDTO{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return FromModels(orders), nil
}
