package orders

import (
	"time"

	"github.com/borrago/dropentregas/internal/pricing"
	"github.com/borrago/dropentregas/pkg/db/models"
	"github.com/shopspring/decimal"
)

// QuoteRequest prices a cart without persisting anything.
type QuoteRequest struct {
	Items      []pricing.CartLine `json:"items" validate:"required,min=1"`
	CouponCode string             `json:"couponCode"`
}

// CreateRequest places an order. The server reprices the cart, client
// totals are never trusted.
type CreateRequest struct {
	Origin      string             `json:"origin" validate:"required"`
	Destination string             `json:"destination" validate:"required"`
	Items       []pricing.CartLine `json:"items" validate:"required,min=1"`
	CouponCode  string             `json:"couponCode"`
}

// VehicleSummary is the vehicle slice embedded in an order item.
type VehicleSummary struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"basePrice"`
}

// ItemDTO is one priced line of a persisted order.
type ItemDTO struct {
	ID        string          `json:"id"`
	VehicleID string          `json:"vehicleId"`
	Vehicle   *VehicleSummary `json:"vehicle,omitempty"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// OrderDTO is the wire representation of a persisted order.
type OrderDTO struct {
	ID          string          `json:"id"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
	CouponCode  *string         `json:"couponCode,omitempty"`
	Items       []ItemDTO       `json:"items"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func FromModel(m *models.Order) OrderDTO {
	dto := OrderDTO{
		ID:          m.ID.String(),
		Origin:      m.Origin,
		Destination: m.Destination,
		Subtotal:    m.Subtotal,
		Discount:    m.Discount,
		Total:       m.Total,
		CouponCode:  m.CouponCode,
		Items:       make([]ItemDTO, 0, len(m.Items)),
		CreatedAt:   m.CreatedAt,
	}
	for i := range m.Items {
		item := &m.Items[i]
		itemDTO := ItemDTO{
			ID:        item.ID.String(),
			VehicleID: item.VehicleID.String(),
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		}
		if item.Vehicle != nil {
			itemDTO.Vehicle = &VehicleSummary{
				ID:        item.Vehicle.ID.String(),
				Name:      item.Vehicle.Name,
				BasePrice: item.Vehicle.BasePrice,
			}
		}
		dto.Items = append(dto.Items, itemDTO)
	}
	return dto
}

func FromModels(ms []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
